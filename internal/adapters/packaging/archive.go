package packaging

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

type runScriptData struct {
	LibraryExport string
	Assets        bool
	Snapshot      bool
	Exec          string
}

// archive stages a relocatable directory with a launcher script and
// compresses it into <out>/<name>-<version>-<triple>.tar.gz.
func (b *Backend) archive(set *domain.ArtifactSet) error {
	if len(set.Bins()) == 0 {
		return zerr.With(invalid(domain.FormatArchive, "archive needs an executable"), "platform", set.Platform.String())
	}
	entry, err := b.table.Lookup(set.Platform)
	if err != nil {
		return err
	}

	base := set.Name + "-" + set.Version
	root := filepath.Join(set.OutDir, "archive")
	dir := filepath.Join(root, base)
	if err := stage(root); err != nil {
		return err
	}
	if err := b.copyItems(set.Bins(), filepath.Join(dir, "bin")); err != nil {
		return err
	}
	if err := b.copyItems(set.Libs(), filepath.Join(dir, "lib")); err != nil {
		return err
	}
	if err := b.copyItems(set.Assets(), filepath.Join(dir, "share")); err != nil {
		return err
	}

	data := runScriptData{
		Assets:   hasAssets(set),
		Snapshot: hasSnapshot(set),
		Exec:     set.Bins()[0].Name,
	}
	if v := entry.Family.LibraryPathVar(); v != "" {
		data.LibraryExport = fmt.Sprintf(`export %[1]s="${HERE}/lib${%[1]s:+:$%[1]s}"`, v)
	}
	script, err := render("run.sh.tmpl", data)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "run.sh"), script, domain.ExecPerm); err != nil {
		return err
	}

	tarball := filepath.Join(set.OutDir, base+"-"+set.Platform.String()+".tar.gz")
	if err := b.archiver.Archive([]string{dir}, tarball); err != nil {
		return err
	}
	b.logger.Debug("wrote " + tarball)
	return nil
}
