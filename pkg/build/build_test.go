package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/moddeck/pkg/errors"
)

type fixture struct {
	base        string
	modlistPath string
	modsRoot    string
	overlayRoot string
	outputRoot  string
}

func newFixture(t *testing.T, modlist string) fixture {
	t.Helper()
	base := t.TempDir()
	f := fixture{
		base:        base,
		modlistPath: filepath.Join(base, "profile", "modlist.txt"),
		modsRoot:    filepath.Join(base, "mods"),
		overlayRoot: filepath.Join(base, "overwrite"),
		outputRoot:  filepath.Join(base, "Data"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.modlistPath), 0755))
	require.NoError(t, os.WriteFile(f.modlistPath, []byte(modlist), 0644))
	require.NoError(t, os.MkdirAll(f.modsRoot, 0755))
	return f
}

func (f fixture) addMod(t *testing.T, name string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(f.modsRoot, name, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func (f fixture) addOverlay(t *testing.T, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(f.overlayRoot, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestRunMergesCaseVariantFolders(t *testing.T) {
	f := newFixture(t, "+modb\n+ModA\n")
	f.addMod(t, "ModA", map[string]string{"meshes/Armor.nif": "armor"})
	f.addMod(t, "modb", map[string]string{"Meshes/weapon.nif": "weapon"})

	summary, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  f.outputRoot,
	})
	require.NoError(t, err)
	require.True(t, summary.OK)

	assert.Equal(t, 2, summary.Mods)
	assert.Equal(t, 1, summary.Conflicts)
	assert.Equal(t, 2, summary.MapSize)
	assert.Equal(t, 2, summary.Link.Created)
	assert.Equal(t, 0, summary.Link.Failed)
	assert.Equal(t, 0, summary.Fold.TotalOverrides())

	// both files land under the single canonical Meshes directory
	_, err = os.Stat(filepath.Join(f.outputRoot, "Meshes", "Armor.nif"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(f.outputRoot, "Meshes", "weapon.nif"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(f.outputRoot, "meshes"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunPriorityAndOverlay(t *testing.T) {
	// modlist top entry wins over lower ones, overlay wins over all
	f := newFixture(t, "+TopMod\n+BottomMod\n")
	f.addMod(t, "BottomMod", map[string]string{
		"textures/rock.dds": "bottom rock",
		"bottom-only.txt":   "b",
	})
	f.addMod(t, "TopMod", map[string]string{"Textures/Rock.dds": "top rock!"})
	f.addOverlay(t, map[string]string{"Textures/Rock.dds": "overlay rock!!"})

	var lines []string
	summary, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OverlayRoot: f.overlayRoot,
		OutputRoot:  f.outputRoot,
		Progress:    func(line string) { lines = append(lines, line) },
	})
	require.NoError(t, err)
	require.True(t, summary.OK)

	assert.Equal(t, 1, summary.Fold.ModOverrides)
	assert.Equal(t, 1, summary.Fold.OverlayOverrides)
	assert.Equal(t, 2, summary.Fold.TotalOverrides())
	assert.Equal(t, 1, summary.Fold.OverlayFiles)
	assert.Equal(t, 2, summary.MapSize)

	content, err := os.ReadFile(filepath.Join(f.outputRoot, "Textures", "Rock.dds"))
	require.NoError(t, err)
	assert.Equal(t, "overlay rock!!", string(content))

	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "Step 1: Reading modlist")
	assert.Contains(t, out, "First mod (lowest priority): BottomMod")
	assert.Contains(t, out, "Last mod (highest priority): TopMod")
	assert.Contains(t, out, "Step 4: Processing overwrite folder")
	assert.Contains(t, out, "SUMMARY")
}

func TestRunMissingModIsNotFatal(t *testing.T) {
	f := newFixture(t, "+Ghost Mod\n+RealMod\n")
	f.addMod(t, "RealMod", map[string]string{"data.esp": "x"})

	summary, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  f.outputRoot,
	})
	require.NoError(t, err)
	require.True(t, summary.OK)

	assert.Equal(t, []string{"Ghost Mod"}, summary.Fold.MissingMods)
	assert.Equal(t, 1, summary.Fold.Mods)
	assert.Equal(t, 1, summary.Link.Created)
}

func TestRunWritesFilemapReport(t *testing.T) {
	f := newFixture(t, "+OnlyMod\n")
	f.addMod(t, "OnlyMod", map[string]string{"OnlyMod.esp": "plugin"})
	reportPath := filepath.Join(f.base, "filemap.txt")

	_, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  f.outputRoot,
		FilemapPath: reportPath,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "OnlyMod.esp <- OnlyMod/OnlyMod.esp")
	assert.Contains(t, string(content), "END OF FILEMAP")
}

func TestRunRebuildIsIdempotent(t *testing.T) {
	f := newFixture(t, "+OnlyMod\n")
	f.addMod(t, "OnlyMod", map[string]string{"Meshes/armor.nif": "m"})

	opts := Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  f.outputRoot,
	}

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.MapSize, second.MapSize)
	assert.Equal(t, first.Link.Created, second.Link.Created)
	assert.Equal(t, 0, second.Link.Failed)
}

func TestRunBadModlistIsFatal(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.Remove(f.modlistPath))

	summary, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  f.outputRoot,
	})
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModlistNotFound))
}

func TestRunUnsafeOutputIsFatal(t *testing.T) {
	f := newFixture(t, "+OnlyMod\n")
	f.addMod(t, "OnlyMod", map[string]string{"a.esp": "a"})

	summary, err := Run(context.Background(), Options{
		ModlistPath: f.modlistPath,
		ModsRoot:    f.modsRoot,
		OutputRoot:  filepath.Join(f.base, "not-data"),
	})
	require.Error(t, err)
	require.NotNil(t, summary)
	assert.False(t, summary.OK)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputUnsafe))
}
