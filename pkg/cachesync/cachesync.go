// Package cachesync keeps the runtime-written cache subtree alive across
// rebuilds.
//
// The game writes ShaderCache into the Data folder while running. The
// Data folder is disposable (it is deleted and relinked on every build),
// so before a rebuild the cache is copied into the overlay, and after
// materialization it is copied back. Real copies, not hardlinks: the
// game keeps mutating the restored tree independently.
package cachesync

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
)

var log = logging.GetLogger("cachesync")

// Result reports one sync operation's outcome
type Result struct {
	// Synced is false when the source had no cache subtree and the
	// destination was deliberately left untouched
	Synced bool

	// Files is the number of files copied
	Files int
}

// Preserve copies the cache subtree from the output root into the
// overlay, replacing any copy already there. Called before the output
// tree is deleted. When the output has no cache subtree the overlay's
// copy is preserved as is.
func Preserve(ctx context.Context, outputRoot, overlayRoot string) (Result, error) {
	return syncTree(ctx, outputRoot, overlayRoot)
}

// Restore copies the cache subtree from the overlay into a freshly
// built output root. Called after materialization.
func Restore(ctx context.Context, overlayRoot, outputRoot string) (Result, error) {
	return syncTree(ctx, overlayRoot, outputRoot)
}

// syncTree replaces dstRoot's cache subtree with srcRoot's, as one
// batched synthfs run: delete the stale destination (a symlink there is
// removed, never followed), recreate the directory structure, copy every
// file.
func syncTree(ctx context.Context, srcRoot, dstRoot string) (Result, error) {
	src := filepath.Join(srcRoot, paths.CacheDirName)
	dst := filepath.Join(dstRoot, paths.CacheDirName)

	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		log.Debug().Str("src", src).Msg("No cache subtree at source, leaving destination untouched")
		return Result{}, nil
	}

	sfs := synthfs.New()
	var ops []synthfs.Operation

	if _, err := os.Lstat(dst); err == nil {
		if _, err := os.Stat(dst); err != nil {
			// dangling symlink, the batched delete would skip it
			if err := os.Remove(dst); err != nil {
				return Result{}, errors.Wrap(err, errors.ErrCacheSync, "cannot remove stale cache link").
					WithDetail("dst", dst)
			}
		} else {
			ops = append(ops, sfs.Delete(relToFSRoot(dst)))
		}
	}

	files := 0
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := dst
		if rel != "." {
			target = filepath.Join(dst, rel)
		}
		if d.IsDir() {
			ops = append(ops, sfs.CreateDir(relToFSRoot(target), 0755))
			return nil
		}
		ops = append(ops, sfs.Copy(relToFSRoot(path), relToFSRoot(target)))
		files++
		return nil
	})
	if walkErr != nil {
		return Result{}, errors.Wrap(walkErr, errors.ErrCacheSync, "cannot enumerate cache subtree").
			WithDetail("src", src)
	}

	fsys := synthfs.NewOSFileSystem("/")
	if _, err := synthfs.Run(ctx, fsys, ops...); err != nil {
		return Result{}, errors.Wrap(err, errors.ErrCacheSync, "cache subtree sync failed").
			WithDetail("src", src).
			WithDetail("dst", dst)
	}

	log.Info().Str("src", src).Str("dst", dst).Int("files", files).Msg("Cache subtree synced")
	return Result{Synced: true, Files: files}, nil
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
