// Package linker materializes a frozen destination map as hardlinks.
package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/filemap"
	"github.com/arthur-debert/moddeck/pkg/logging"
)

var log = logging.GetLogger("linker")

// progressEvery controls how often a checkpoint line is emitted
const progressEvery = 5000

// Failure records one file that could not be linked
type Failure struct {
	Mod    string
	Source string
	Dest   string

	// Code distinguishes a vanished origin from an OS-level link
	// failure
	Code errors.ErrorCode

	// Err is the underlying error text, OS wording kept verbatim
	Err  string
	Size int64
}

// Result accumulates the outcome of one materialization pass
type Result struct {
	Total      int
	Created    int
	Failed     int
	SizeLinked int64
	SizeFailed int64
	Failures   []Failure
}

// Link hardlinks every entry of a frozen map under outputRoot. The pass
// is best effort: a failed entry is recorded and the rest continue. The
// OS error text is kept verbatim so cross-device and permission problems
// can be diagnosed from the report. Progress lines go to progress when
// it is non-nil.
func Link(m filemap.Map, outputRoot string, progress func(string)) Result {
	result := Result{Total: len(m)}

	// deterministic processing order keeps checkpoint lines and failure
	// ordering stable between identical builds
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		entry := m[key]
		destFile := filepath.Join(outputRoot, entry.DestPath)
		size := sizeOf(entry.Source)

		if err := linkOne(entry.Source, destFile); err != nil {
			result.Failed++
			result.SizeFailed += size
			result.Failures = append(result.Failures, Failure{
				Mod:    entry.Mod,
				Source: entry.Source,
				Dest:   destFile,
				Code:   errors.GetErrorCode(err),
				Err:    err.Error(),
				Size:   size,
			})
			log.Debug().Err(err).Str("source", entry.Source).
				Str("dest", destFile).Msg("Link failed")
		} else {
			result.Created++
			result.SizeLinked += size
		}

		if progress != nil && ((i+1)%progressEvery == 0 || i+1 == result.Total) {
			pct := (i + 1) * 100 / result.Total
			progress(fmt.Sprintf("  Progress: %d/%d (%d%%) - Created: %d, Failed: %d",
				i+1, result.Total, pct, result.Created, result.Failed))
		}
	}

	log.Info().Int("total", result.Total).Int("created", result.Created).
		Int("failed", result.Failed).Msg("Materialization pass complete")
	return result
}

// linkOne places one hardlink, replacing whatever file is at dest
func linkOne(source, dest string) error {
	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create destination directory")
	}

	if _, err := os.Lstat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return errors.Wrap(err, errors.ErrLinkFailed, "cannot replace existing destination")
		}
	}

	// The origin can vanish between scan and link; that window is
	// reported per file, never silently skipped.
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrOriginVanished, "source file not found: %s", source)
		}
		return errors.Wrap(err, errors.ErrLinkFailed, "cannot stat source")
	}

	if err := os.Link(source, dest); err != nil {
		return errors.Wrap(err, errors.ErrLinkFailed, "hardlink failed")
	}
	return nil
}

// sizeOf returns a file's size in bytes, 0 when it cannot be statted
func sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
