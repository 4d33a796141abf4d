package packaging

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/embark/internal/adapters/toolchain"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	defaultAPILevel = 29
	minSDKVersion   = 18
	packageIDPrefix = "rs.flutter."
)

type apkPlan struct {
	dir      string
	apk      string
	abi      string
	jar      string
	keystore string
	manifest manifestData
}

type manifestData struct {
	PackageID string
	Version   string
	Label     string
	LibName   string
	MinSDK    int
	APILevel  int
}

func (b *Backend) planAPK(set *domain.ArtifactSet, spec domain.PackageSpec) (apkPlan, error) {
	entry, err := b.table.Lookup(set.Platform)
	if err != nil {
		return apkPlan{}, err
	}
	if entry.Family != domain.FamilyAndroid || entry.AndroidABI == "" {
		return apkPlan{}, zerr.With(invalid(spec.Format, "apk needs an android target"), "platform", set.Platform.String())
	}
	if len(set.Libs()) == 0 {
		return apkPlan{}, invalid(spec.Format, "apk needs a native library")
	}

	if b.toolchain.AAPT == "" {
		return apkPlan{}, zerr.With(zerr.Wrap(domain.ErrToolNotFound, "required tool is not installed"), "tool", "aapt")
	}

	cfg := spec.Config
	apiLevel := cfg.APILevel
	jar := b.toolchain.AndroidJar
	if apiLevel > 0 {
		jar = toolchain.AndroidJar(b.toolchain.AndroidHome, apiLevel)
	} else {
		apiLevel = defaultAPILevel
	}
	if jar == "" || !fileExists(jar) {
		err := invalid(spec.Format, "android platform jar not found")
		return apkPlan{}, zerr.With(zerr.With(err, "android_home", b.toolchain.AndroidHome), "api_level", apiLevel)
	}

	var keystore string
	if spec.Sign {
		if cfg.Keystore == "" {
			return apkPlan{}, invalid(spec.Format, "signing an apk needs a keystore")
		}
		keystore = cfg.Keystore
		if !filepath.IsAbs(keystore) {
			keystore = filepath.Join(set.RootDir, keystore)
		}
		if !fileExists(keystore) {
			return apkPlan{}, zerr.With(invalid(spec.Format, "keystore not found"), "path", keystore)
		}
		if b.toolchain.APKSigner == "" {
			return apkPlan{}, zerr.With(zerr.Wrap(domain.ErrToolNotFound, "required tool is not installed"), "tool", "apksigner")
		}
	}

	libName := strings.ReplaceAll(set.Name, "-", "_")
	data := manifestData{
		PackageID: cfg.PackageID,
		Version:   set.Version,
		Label:     cfg.Label,
		LibName:   libName,
		MinSDK:    minSDKVersion,
		APILevel:  apiLevel,
	}
	if data.PackageID == "" {
		data.PackageID = packageIDPrefix + libName
	}
	if data.Label == "" {
		data.Label = cfg.Name
	}
	if data.Label == "" {
		data.Label = set.Name
	}

	return apkPlan{
		dir:      filepath.Join(set.OutDir, "apk"),
		apk:      filepath.Join(set.OutDir, set.Name+".apk"),
		abi:      entry.AndroidABI,
		jar:      jar,
		keystore: keystore,
		manifest: data,
	}, nil
}

// apk stages the manifest, assets and native libraries and packs them with aapt.
// Native libraries live under native/ so aapt adds them as raw files at lib/<abi>.
func (b *Backend) apk(ctx context.Context, set *domain.ArtifactSet, spec domain.PackageSpec) error {
	plan, err := b.planAPK(set, spec)
	if err != nil {
		return err
	}

	if err := stage(plan.dir); err != nil {
		return err
	}
	if err := b.copyItems(set.Libs(), filepath.Join(plan.dir, "native", "lib", plan.abi)); err != nil {
		return err
	}
	if err := b.copyItems(set.Assets(), filepath.Join(plan.dir, "assets")); err != nil {
		return err
	}

	manifest, err := render("AndroidManifest.xml.tmpl", plan.manifest)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(plan.dir, "AndroidManifest.xml"), manifest, domain.FilePerm); err != nil {
		return err
	}

	if err := os.Remove(plan.apk); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove previous apk"), "path", plan.apk)
	}
	err = b.packageCommand(ctx, plan.dir, b.toolchain.AAPT,
		"package", "-f",
		"-M", "AndroidManifest.xml",
		"-A", "assets",
		"-I", plan.jar,
		"-F", plan.apk,
		"native",
	)
	if err != nil {
		return err
	}

	if !spec.Sign {
		return nil
	}
	return b.packageCommand(ctx, plan.dir, b.toolchain.APKSigner, "sign", "--ks", plan.keystore, plan.apk)
}
