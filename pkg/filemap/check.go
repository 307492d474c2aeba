package filemap

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/casefold"
	"github.com/arthur-debert/moddeck/pkg/scanner"
)

// Provider is one mod that supplies a given destination path
type Provider struct {
	// Index is the mod's position in fold order (0 = lowest priority)
	Index int

	Mod            string
	OriginPath     string
	NormalizedPath string
	Source         string
	Exists         bool
}

// FindProviders reports every enabled mod that provides the given
// relative path, in fold order. The last element is the winner. This is
// a read-only diagnostic; nothing is linked.
func FindProviders(mods []string, modsRoot, rel string, canonical casefold.Canonical) []Provider {
	checkKey := scanner.MatchKey(rel)

	var found []Provider
	for i, name := range mods {
		modPath := filepath.Join(modsRoot, name)
		if _, err := os.Stat(modPath); err != nil {
			continue
		}
		for _, file := range scanner.ScanFiles(modPath) {
			if file.MatchKey != checkKey {
				continue
			}
			source := filepath.Join(modPath, file.RelPath)
			_, statErr := os.Stat(source)
			found = append(found, Provider{
				Index:          i,
				Mod:            name,
				OriginPath:     file.RelPath,
				NormalizedPath: canonical.NormalizePath(file.RelPath),
				Source:         source,
				Exists:         statErr == nil,
			})
		}
	}
	return found
}
