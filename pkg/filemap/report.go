package filemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/arthur-debert/moddeck/pkg/errors"
)

// ReportMeta describes the build a filemap report belongs to
type ReportMeta struct {
	ModlistPath string
	ModsRoot    string
	OverlayRoot string
	EnabledMods int
	Conflicts   int
	GeneratedAt time.Time
}

const reportRule = "===================================================================================================="
const reportThinRule = "----------------------------------------------------------------------------------------------------"

// WriteReport writes a deterministic listing of every destination to
// origin mapping, sorted by match key so two builds over the same
// sources diff cleanly.
func (m Map) WriteReport(w io.Writer, meta ReportMeta, stats Stats) error {
	bw := bufio.NewWriter(w)

	overlay := meta.OverlayRoot
	if overlay == "" {
		overlay = "Not specified"
	}

	fmt.Fprintln(bw, reportRule)
	fmt.Fprintln(bw, "FILEMAP - Files to be hardlinked into the Data folder")
	fmt.Fprintln(bw, reportRule)
	fmt.Fprintf(bw, "Generated: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "Modlist: %s\n", meta.ModlistPath)
	fmt.Fprintf(bw, "Mods folder: %s\n", meta.ModsRoot)
	fmt.Fprintf(bw, "Total enabled mods: %d\n", meta.EnabledMods)
	fmt.Fprintf(bw, "Overwrite folder: %s\n", overlay)
	fmt.Fprintf(bw, "Total files: %d\n", len(m))
	fmt.Fprintf(bw, "Total overrides: %d\n", stats.ModOverrides)
	fmt.Fprintf(bw, "Overwrite files: %d\n", stats.OverlayFiles)
	fmt.Fprintf(bw, "Folder name conflicts: %d\n", meta.Conflicts)
	fmt.Fprintln(bw, "NOTE: Conflicting folders use the most-uppercase variant, filenames preserve original case")
	fmt.Fprintln(bw, reportRule)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Format: [destination_path] <- [source_mod]/[original_path]")
	fmt.Fprintln(bw, reportThinRule)
	fmt.Fprintln(bw)

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := m[key]
		fmt.Fprintf(bw, "%s <- %s/%s\n", entry.DestPath, entry.Mod, entry.OriginPath)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, reportRule)
	fmt.Fprintln(bw, "END OF FILEMAP")
	fmt.Fprintln(bw, reportRule)

	return bw.Flush()
}

// WriteReportFile writes the report to a file, truncating any previous one
func (m Map) WriteReportFile(path string, meta ReportMeta, stats Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "cannot create filemap report").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	if err := m.WriteReport(f, meta, stats); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot write filemap report").
			WithDetail("path", path)
	}
	return nil
}
