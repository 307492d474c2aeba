// Package modlist parses priority-ordered mod lists.
//
// A modlist is a plain text file, one entry per line. Lines starting with
// "+" name enabled mods, "-" disabled mods, and "*" separators. Entries
// nearer the top of the file win conflicts, so Parse returns names in
// reverse file order: lowest priority first, ready to be folded so that
// later folds overwrite earlier ones.
package modlist

import (
	"bufio"
	"os"
	"strings"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
)

var log = logging.GetLogger("modlist")

// Parse reads a modlist file and returns the enabled mod names, bottom
// entry first. Duplicate names are preserved; the later fold simply
// re-wins its own files. A missing file is a configuration error.
func Parse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrModlistNotFound, "modlist not found").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read modlist").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read modlist").
			WithDetail("path", path)
	}

	var enabled []string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			enabled = append(enabled, strings.TrimSpace(line[1:]))
		case '-', '*':
			// disabled entry or separator
		default:
			log.Trace().Str("line", line).Msg("Ignoring unprefixed modlist line")
		}
	}

	log.Debug().Str("path", path).Int("enabled", len(enabled)).Msg("Modlist parsed")
	return enabled, nil
}

// CountPlugins reports how many plugins a plugins.txt lists and how many
// are enabled. Plugin lines use "*" as the enabled prefix; the file is
// never interpreted beyond these counts, it is symlinked for the game to
// read directly.
func CountPlugins(path string) (enabled, total int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrNotFound, "plugins list not found").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		if strings.HasPrefix(line, "*") {
			enabled++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrConfigLoad, "cannot read plugins list").
			WithDetail("path", path)
	}
	return enabled, total, nil
}
