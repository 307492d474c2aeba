package build

import (
	"context"
	"os"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
)

// EnsureOutputRoot verifies the output path passes the Data base-name
// safety check and creates it if needed. Failing to create it is fatal;
// the build must not start materializing.
func EnsureOutputRoot(path string) error {
	if !paths.IsDataFolder(path) {
		return errors.Newf(errors.ErrOutputUnsafe,
			"output folder must be named %q, got: %s", paths.DataFolderName, path).
			WithDetail("path", path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create output directory").
			WithDetail("path", path)
	}
	return nil
}

// ResetOutputRoot deletes an existing output tree so the next build
// starts clean. The Data base-name check guards against deleting an
// unintended directory; callers must confirm with the user first.
func ResetOutputRoot(ctx context.Context, path string) error {
	if !paths.IsDataFolder(path) {
		return errors.Newf(errors.ErrOutputUnsafe,
			"refusing to delete %s: base name is not %q", path, paths.DataFolderName).
			WithDetail("path", path)
	}

	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, errors.ErrOutputReset, "cannot inspect output directory").
			WithDetail("path", path)
	}

	sfs := synthfs.New()
	fsys := synthfs.NewOSFileSystem("/")
	if _, err := synthfs.Run(ctx, fsys, sfs.Delete(relToFSRoot(path))); err != nil {
		return errors.Wrap(err, errors.ErrOutputReset, "cannot delete output directory").
			WithDetail("path", path)
	}

	log.Info().Str("path", path).Msg("Output directory deleted")
	return nil
}
