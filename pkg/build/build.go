// Package build orchestrates one full Data folder build: parse the
// modlist, resolve folder-name casing across every active mod, fold all
// sources into a frozen destination map, then materialize the map as
// hardlinks.
//
// The two passes are deliberately separate: no file is linked until the
// full map, overlay included, is known. That is what makes the override
// accounting correct. Everything here is synchronous and single
// threaded; callers wanting a responsive UI run Run on their own
// goroutine and consume the progress lines. Concurrent builds against
// the same output root are not safe and must be serialized by the
// caller.
package build

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/moddeck/pkg/casefold"
	"github.com/arthur-debert/moddeck/pkg/filemap"
	"github.com/arthur-debert/moddeck/pkg/linker"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/arthur-debert/moddeck/pkg/modlist"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/arthur-debert/moddeck/pkg/scanner"
	"github.com/arthur-debert/moddeck/pkg/style"
)

var log = logging.GetLogger("build")

// foldProgressEvery controls how often a fold checkpoint is emitted
const foldProgressEvery = 50

// maxInlineConflicts caps the example resolutions shown in the stream
const maxInlineConflicts = 10

// maxInlineFailures caps the failures shown inline before the full list
const maxInlineFailures = 10

// Options carries everything one build needs. The engine takes plain
// paths; resolving game profiles or ambient environment is the caller's
// job.
type Options struct {
	ModlistPath string
	ModsRoot    string

	// OverlayRoot is the always-highest-priority source. Empty means
	// no overlay.
	OverlayRoot string

	OutputRoot string

	// FilemapPath, when set, receives the sorted destination listing
	FilemapPath string

	// Progress receives one human-readable line per call, in order.
	// Nil discards.
	Progress func(string)
}

// Summary is the structured result of one build
type Summary struct {
	Mods      int
	Conflicts int
	Fold      filemap.Stats
	MapSize   int
	Link      linker.Result

	// OK is true when the materialization pass ran to completion,
	// regardless of per-file failures. Only a setup crash makes a
	// build not OK.
	OK      bool
	Message string
}

// Run executes one full build. It returns an error only for fatal setup
// problems (bad modlist, uncreatable output root); per-file trouble is
// accounted in the summary instead.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	defer logging.LogDuration(start, "build")

	emit := opts.Progress
	if emit == nil {
		emit = func(string) {}
	}

	// Step 1: modlist, bottom to top
	emit("Step 1: Reading modlist (bottom to top)...")
	mods, err := modlist.Parse(opts.ModlistPath)
	if err != nil {
		return nil, err
	}
	emit(fmt.Sprintf("  Found %d enabled mods", len(mods)))
	if len(mods) > 0 {
		emit(fmt.Sprintf("  First mod (lowest priority): %s", mods[0]))
		emit(fmt.Sprintf("  Last mod (highest priority): %s", mods[len(mods)-1]))
	}

	// Step 2: folder-name casing across every active source
	emit("Step 2: Analyzing folder names across all mods...")
	variants := casefold.NewVariants()
	for _, name := range mods {
		scanner.CollectVariants(modPath(opts.ModsRoot, name), variants)
	}
	if opts.OverlayRoot != "" {
		scanner.CollectVariants(opts.OverlayRoot, variants)
	}
	canonical := variants.Resolve()
	conflicts := variants.Conflicts()
	emit(fmt.Sprintf("  Total unique folders: %d", len(canonical)))
	emit(fmt.Sprintf("  Folder name conflicts resolved: %d", len(conflicts)))
	emitConflictExamples(emit, conflicts, canonical)

	// Step 3: fold ordinary mods, lowest priority first
	emit("Step 3: Building filemap...")
	emit("  (Conflicting folders use the most-uppercase variant, filenames preserve original case)")
	builder := filemap.NewBuilder(canonical)
	for i, name := range mods {
		builder.FoldMod(name, opts.ModsRoot)
		if (i+1)%foldProgressEvery == 0 {
			emit(fmt.Sprintf("  Processed %d/%d mods...", i+1, len(mods)))
		}
	}
	stats := builder.Stats()
	emit(fmt.Sprintf("  Total files in filemap: %d", len(builder.Map())))
	emit(fmt.Sprintf("  Total overrides (files replaced by higher priority): %d", stats.ModOverrides))
	emit(fmt.Sprintf("  Size of overridden files (unused): %s", style.FormatSize(stats.BytesOverridden)))

	// Step 4: the overlay folds last and wins unconditionally
	if opts.OverlayRoot != "" {
		emit("Step 4: Processing overwrite folder (highest priority)...")
		overlay := builder.FoldOverlay(opts.OverlayRoot)
		if overlay.Missing {
			emit("  Overwrite folder not found, skipping...")
		} else {
			emit(fmt.Sprintf("  Files from overwrite: %d", overlay.Files))
			emit(fmt.Sprintf("  Files overridden by overwrite: %d", overlay.Overrides))
			emit(fmt.Sprintf("  Size of files overridden by overwrite: %s",
				style.FormatSize(builder.Stats().OverlayBytesOverridden)))
			if overlay.CacheSkipped > 0 {
				emit(fmt.Sprintf("  %s files skipped (copied separately): %d",
					paths.CacheDirName, overlay.CacheSkipped))
			}
		}
	} else {
		emit("Step 4: No overwrite folder specified, skipping...")
	}

	// The map is frozen from here on
	m := builder.Map()
	stats = builder.Stats()

	// Step 5: optional filemap report
	if opts.FilemapPath != "" {
		emit(fmt.Sprintf("Step 5: Saving filemap to %s...", opts.FilemapPath))
		meta := filemap.ReportMeta{
			ModlistPath: opts.ModlistPath,
			ModsRoot:    opts.ModsRoot,
			OverlayRoot: opts.OverlayRoot,
			EnabledMods: len(mods),
			Conflicts:   len(conflicts),
			GeneratedAt: time.Now(),
		}
		if err := m.WriteReportFile(opts.FilemapPath, meta, stats); err != nil {
			// the report is a convenience, not part of the build
			log.Warn().Err(err).Str("path", opts.FilemapPath).Msg("Filemap report failed")
			emit(fmt.Sprintf("  WARNING: filemap report failed: %v", err))
		} else {
			emit("  Filemap saved.")
		}
	}

	// Step 6: output root. Failure here is the one fatal outcome.
	emit("Step 6: Preparing output directory...")
	if err := EnsureOutputRoot(opts.OutputRoot); err != nil {
		return &Summary{OK: false, Message: err.Error()}, err
	}
	emit(fmt.Sprintf("  Output: %s", opts.OutputRoot))

	// Step 7: materialize
	emit("Step 7: Creating hardlinks...")
	result := linker.Link(m, opts.OutputRoot, emit)

	summary := &Summary{
		Mods:      len(mods),
		Conflicts: len(conflicts),
		Fold:      stats,
		MapSize:   len(m),
		Link:      result,
		OK:        true,
		Message:   fmt.Sprintf("Build complete: %d created, %d failed", result.Created, result.Failed),
	}
	emitSummary(emit, opts, summary)
	return summary, nil
}

// emitConflictExamples streams up to maxInlineConflicts resolved
// buckets, in sorted order so identical builds produce identical output
func emitConflictExamples(emit func(string), conflicts map[string][]string, canonical casefold.Canonical) {
	if len(conflicts) == 0 {
		return
	}
	keys := make([]string, 0, len(conflicts))
	for key := range conflicts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	emit(fmt.Sprintf("  Conflicts (showing first %d):", maxInlineConflicts))
	for i, key := range keys {
		if i == maxInlineConflicts {
			emit(fmt.Sprintf("    ... and %d more", len(keys)-maxInlineConflicts))
			break
		}
		emit(fmt.Sprintf("    %s: %v -> %q", key, conflicts[key], canonical[key]))
	}
}

// emitSummary streams the terminal summary block
func emitSummary(emit func(string), opts Options, s *Summary) {
	rule := "======================================================================"
	emit("")
	emit(rule)
	emit(style.Render("Header", "SUMMARY"))
	emit(rule)
	emit(fmt.Sprintf("Total files in filemap: %d", s.MapSize))
	emit(fmt.Sprintf("Hardlinks created:      %d", s.Link.Created))
	emit(fmt.Sprintf("Failed:                 %d", s.Link.Failed))
	emit(fmt.Sprintf("Files overridden:       %d", s.Fold.TotalOverrides()))
	emit(fmt.Sprintf("Data folder:            %s", opts.OutputRoot))
	emit("")
	emit(fmt.Sprintf("Size of files linked to Data:      %s", style.FormatSizeBoth(s.Link.SizeLinked)))
	emit(fmt.Sprintf("Size of overridden files (unused): %s", style.FormatSizeBoth(s.Fold.BytesOverridden)))
	if s.Link.SizeFailed > 0 {
		emit(fmt.Sprintf("Size of failed files:              %s", style.FormatSizeBoth(s.Link.SizeFailed)))
	}

	if len(s.Link.Failures) > 0 {
		emit("")
		emit(style.Render("Error", fmt.Sprintf("FAILURES (first %d):", maxInlineFailures)))
		for i, f := range s.Link.Failures {
			if i == maxInlineFailures {
				emit(fmt.Sprintf("  ... and %d more failures", len(s.Link.Failures)-maxInlineFailures))
				break
			}
			emit(fmt.Sprintf("  Source: %s", f.Source))
			emit(fmt.Sprintf("  Dest:   %s", f.Dest))
			emit(fmt.Sprintf("  Size:   %s", style.FormatSize(f.Size)))
			emit(fmt.Sprintf("  Error:  %s", f.Err))
			emit("")
		}
	}
}

func modPath(modsRoot, name string) string {
	return filepath.Join(modsRoot, name)
}
