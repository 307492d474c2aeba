// Package scanner enumerates the files and directory names of one mod tree.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/moddeck/pkg/casefold"
	"github.com/arthur-debert/moddeck/pkg/logging"
)

var log = logging.GetLogger("scanner")

// FileEntry is one file found inside a mod tree
type FileEntry struct {
	// RelPath is the path relative to the mod root, as spelled on disk
	RelPath string

	// MatchKey is the lowercased RelPath, used for case-insensitive
	// collision detection across mods
	MatchKey string
}

// MatchKey derives the case-insensitive match key for a relative path
func MatchKey(relPath string) string {
	return strings.ToLower(relPath)
}

// ScanFiles walks a mod root and returns every regular file under it.
// A missing root is an expected condition and yields an empty result;
// absent mods are reported by the caller, not here. Enumeration order
// is whatever the filesystem gives us and carries no meaning.
func ScanFiles(root string) []FileEntry {
	if _, err := os.Stat(root); err != nil {
		log.Trace().Str("root", root).Msg("Mod root not present, empty scan")
		return nil
	}

	var files []FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, FileEntry{RelPath: rel, MatchKey: MatchKey(rel)})
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("Scan aborted")
	}

	log.Trace().Str("root", root).Int("files", len(files)).Msg("Scanned mod tree")
	return files
}

// CollectVariants records the spelling of every directory under root,
// including every intermediate path segment, into the variant buckets.
func CollectVariants(root string, vars casefold.Variants) {
	if _, err := os.Stat(root); err != nil {
		return
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			vars.Add(part)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("Variant collection aborted")
	}
}
