package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/arthur-debert/moddeck/pkg/modlist"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
)

var pluginsLog = logging.GetLogger("build.plugins")

// LinkPlugins symlinks the plugins.txt sitting beside the modlist into
// destDir, replacing any existing file or symlink there. The game reads
// the list through this link; its content is never interpreted beyond a
// count for the log. Returns false without error when there is no
// plugins.txt to link.
func LinkPlugins(ctx context.Context, modlistPath, destDir string) (bool, error) {
	source := filepath.Join(filepath.Dir(modlistPath), paths.PluginsFileName)
	if _, err := os.Stat(source); err != nil {
		pluginsLog.Warn().Str("source", source).Msg("plugins.txt not found, skipping symlink")
		return false, nil
	}

	if enabled, total, err := modlist.CountPlugins(source); err == nil {
		pluginsLog.Debug().Int("enabled", enabled).Int("total", total).Msg("Plugin list")
	}

	dest := filepath.Join(destDir, paths.PluginsFileName)

	sfs := synthfs.New()
	var ops []synthfs.Operation
	ops = append(ops, sfs.CreateDir(relToFSRoot(destDir), 0755))
	if _, err := os.Lstat(dest); err == nil {
		if _, err := os.Stat(dest); err != nil {
			// dangling symlink, the batched delete would skip it
			if err := os.Remove(dest); err != nil {
				return false, errors.Wrap(err, errors.ErrSymlinkCreate, "cannot remove stale plugins link").
					WithDetail("dest", dest)
			}
		} else {
			ops = append(ops, sfs.Delete(relToFSRoot(dest)))
		}
	}
	ops = append(ops, sfs.CreateSymlink(relToFSRoot(source), relToFSRoot(dest)))

	fsys := synthfs.NewOSFileSystem("/")
	if _, err := synthfs.Run(ctx, fsys, ops...); err != nil {
		return false, errors.Wrap(err, errors.ErrSymlinkCreate, "failed to symlink plugins list").
			WithDetail("source", source).
			WithDetail("dest", dest)
	}

	pluginsLog.Info().Str("source", source).Str("dest", dest).Msg("Plugins list symlinked")
	return true, nil
}

// relToFSRoot converts an absolute path into the form the root-anchored
// synthfs filesystem expects
func relToFSRoot(abs string) string {
	rel, err := filepath.Rel("/", abs)
	if err != nil {
		return abs
	}
	return rel
}
