package packaging

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

type appImagePlan struct {
	dir      string
	name     string
	exec     string
	iconPath string
	tool     string
}

type appRunData struct {
	Assets   bool
	Snapshot bool
}

type desktopData struct {
	Name string
	Exec string
	Icon string
}

func (b *Backend) planAppImage(set *domain.ArtifactSet, spec domain.PackageSpec) (appImagePlan, error) {
	if b.goos == "windows" {
		return appImagePlan{}, invalid(spec.Format, "appimages can only be built on a unix host")
	}
	if len(set.Bins()) == 0 {
		return appImagePlan{}, zerr.With(invalid(spec.Format, "appimage needs an executable"), "platform", set.Platform.String())
	}

	iconPath := spec.Config.Icon
	if iconPath == "" {
		iconPath = filepath.Join(set.RootDir, "assets", "icon.svg")
	} else if !filepath.IsAbs(iconPath) {
		iconPath = filepath.Join(set.RootDir, iconPath)
	}
	if !fileExists(iconPath) {
		return appImagePlan{}, zerr.With(invalid(spec.Format, "icon not found"), "path", iconPath)
	}

	if b.toolchain.AppImageTool == "" {
		err := zerr.With(zerr.Wrap(domain.ErrToolNotFound, "required tool is not installed"), "tool", "appimagetool")
		return appImagePlan{}, zerr.With(err, "stage", string(domain.StagePackage))
	}

	name := spec.Config.Name
	if name == "" {
		name = set.Name
	}

	return appImagePlan{
		dir:      filepath.Join(set.OutDir, "appimage"),
		name:     name,
		exec:     set.Bins()[0].Name,
		iconPath: iconPath,
		tool:     b.toolchain.AppImageTool,
	}, nil
}

// appImage lays out an AppDir and hands it to appimagetool.
func (b *Backend) appImage(ctx context.Context, set *domain.ArtifactSet, spec domain.PackageSpec) error {
	plan, err := b.planAppImage(set, spec)
	if err != nil {
		return err
	}

	if err := stage(plan.dir); err != nil {
		return err
	}
	usr := filepath.Join(plan.dir, "usr")
	if err := b.copyItems(set.Bins(), filepath.Join(usr, "bin")); err != nil {
		return err
	}
	if err := b.copyItems(set.Libs(), filepath.Join(usr, "lib")); err != nil {
		return err
	}
	if err := b.copyItems(set.Assets(), filepath.Join(usr, "share")); err != nil {
		return err
	}

	appRun, err := render("AppRun.tmpl", appRunData{Assets: hasAssets(set), Snapshot: hasSnapshot(set)})
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(plan.dir, "AppRun"), appRun, domain.ExecPerm); err != nil {
		return err
	}

	iconFile := filepath.Base(plan.iconPath)
	desktop, err := render("desktop.tmpl", desktopData{
		Name: plan.name,
		Exec: plan.exec,
		Icon: strings.TrimSuffix(iconFile, filepath.Ext(iconFile)),
	})
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(plan.dir, plan.exec+".desktop"), desktop, domain.ExecPerm); err != nil {
		return err
	}
	if err := b.copier.CopyFile(plan.iconPath, filepath.Join(plan.dir, iconFile)); err != nil {
		return err
	}

	args := []string{"appimage"}
	if spec.Sign {
		args = append(args, "--sign")
	}
	return b.packageCommand(ctx, set.OutDir, plan.tool, args...)
}
