// Package filemap folds scanned mod trees into one destination map.
//
// The map is keyed by the case-insensitive relative path, so two mods
// shipping the same file under different casings collide onto a single
// entry. Mods are folded lowest priority first and every fold simply
// overwrites, which makes the last writer the winner and turns priority
// into plain iteration order. The overlay folds last and wins over
// everything.
package filemap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/moddeck/pkg/casefold"
	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/arthur-debert/moddeck/pkg/scanner"
)

var log = logging.GetLogger("filemap")

// OverlaySource is the sentinel mod name for files won by the overlay
const OverlaySource = "[OVERWRITE]"

// Entry records the winning origin for one destination path
type Entry struct {
	// Mod is the winning source name, or OverlaySource
	Mod string

	// OriginPath is the file's path inside its mod, as spelled on disk
	OriginPath string

	// DestPath is the normalized destination path: canonical directory
	// spellings, original filename
	DestPath string

	// Source is the absolute path of the origin file
	Source string
}

// Map holds at most one entry per case-insensitive destination path
type Map map[string]Entry

// Stats accumulates fold accounting across all sources
type Stats struct {
	Mods         int
	MissingMods  []string
	ModOverrides int

	// BytesOverridden is the grand total of displaced bytes, overlay
	// included
	BytesOverridden int64

	OverlayFiles           int
	OverlayOverrides       int
	OverlayBytesOverridden int64
	CacheSkipped           int
}

// TotalOverrides returns override events across ordinary mods and the
// overlay combined
func (s Stats) TotalOverrides() int {
	return s.ModOverrides + s.OverlayOverrides
}

// Builder folds sources into a Map in priority order
type Builder struct {
	canonical casefold.Canonical
	m         Map
	stats     Stats
}

// NewBuilder creates a Builder that normalizes paths with the given
// canonical folder map
func NewBuilder(canonical casefold.Canonical) *Builder {
	return &Builder{
		canonical: canonical,
		m:         make(Map),
	}
}

// ModResult reports one mod's fold outcome
type ModResult struct {
	Files     int
	Overrides int
	Missing   bool

	// Err is set for a skipped mod, carrying the source-missing code
	Err error
}

// FoldMod scans one mod and folds its files into the map, overwriting
// any entry a lower-priority mod placed at the same match key. A missing
// mod directory is skipped with a warning.
func (b *Builder) FoldMod(name, modsRoot string) ModResult {
	modPath := filepath.Join(modsRoot, name)
	if _, err := os.Stat(modPath); err != nil {
		missErr := errors.Wrapf(err, errors.ErrSourceMissing, "mod folder not found: %s", name).
			WithDetail("path", modPath)
		log.Warn().Err(missErr).Str("mod", name).Msg("Mod folder not found, skipping")
		b.stats.MissingMods = append(b.stats.MissingMods, name)
		return ModResult{Missing: true, Err: missErr}
	}

	b.stats.Mods++
	var result ModResult
	for _, file := range scanner.ScanFiles(modPath) {
		overridden := b.put(file.MatchKey, Entry{
			Mod:        name,
			OriginPath: file.RelPath,
			DestPath:   b.canonical.NormalizePath(file.RelPath),
			Source:     filepath.Join(modPath, file.RelPath),
		})
		result.Files++
		if overridden {
			result.Overrides++
			b.stats.ModOverrides++
		}
	}

	log.Debug().Str("mod", name).Int("files", result.Files).
		Int("overrides", result.Overrides).Msg("Mod folded")
	return result
}

// OverlayResult reports the overlay's fold outcome
type OverlayResult struct {
	Files        int
	Overrides    int
	CacheSkipped int
	Missing      bool
}

// FoldOverlay folds the overlay root last, so its files win
// unconditionally. Files under the cache subtree are excluded; the cache
// is synced separately because the game mutates it at runtime.
func (b *Builder) FoldOverlay(overlayRoot string) OverlayResult {
	if _, err := os.Stat(overlayRoot); err != nil {
		log.Debug().Str("path", overlayRoot).Msg("Overlay folder not found, skipping")
		return OverlayResult{Missing: true}
	}

	var result OverlayResult
	for _, file := range scanner.ScanFiles(overlayRoot) {
		first := strings.SplitN(file.RelPath, string(filepath.Separator), 2)[0]
		if strings.EqualFold(first, paths.CacheDirName) {
			result.CacheSkipped++
			continue
		}

		overridden := b.put(file.MatchKey, Entry{
			Mod:        OverlaySource,
			OriginPath: file.RelPath,
			DestPath:   b.canonical.NormalizePath(file.RelPath),
			Source:     filepath.Join(overlayRoot, file.RelPath),
		})
		result.Files++
		if overridden {
			result.Overrides++
			b.stats.OverlayOverrides++
		}
	}

	b.stats.OverlayFiles = result.Files
	b.stats.CacheSkipped = result.CacheSkipped

	log.Debug().Int("files", result.Files).Int("overrides", result.Overrides).
		Int("cacheSkipped", result.CacheSkipped).Msg("Overlay folded")
	return result
}

// put installs an entry and accounts for the one it displaces.
// Returns true when an existing entry was overridden.
func (b *Builder) put(matchKey string, entry Entry) bool {
	old, existed := b.m[matchKey]
	if existed {
		size := sizeOf(old.Source)
		b.stats.BytesOverridden += size
		if entry.Mod == OverlaySource {
			b.stats.OverlayBytesOverridden += size
		}
		log.Trace().Str("dest", entry.DestPath).Str("loser", old.Mod).
			Str("winner", entry.Mod).Msg("Override")
	}
	b.m[matchKey] = entry
	return existed
}

// Map returns the folded map. The caller must be done folding;
// materialization relies on the map being frozen.
func (b *Builder) Map() Map {
	return b.m
}

// Stats returns the accumulated fold accounting
func (b *Builder) Stats() Stats {
	return b.stats
}

// sizeOf returns a file's size in bytes, 0 when it cannot be statted
func sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
