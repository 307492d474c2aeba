package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/moddeck/pkg/errors"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.toml")
	content := `
[[games]]
name = "Skyrim Special Edition"
data_path = "~/Games/skyrim-se/pfx/drive_c/Skyrim/Data"
plugins_path = "~/Games/skyrim-se/pfx/drive_c/users/steamuser/AppData/Local/Skyrim Special Edition/plugins.txt"
launcher_name = "SkyrimSELauncher.exe"

[[games]]
name = "Fallout 4"
data_path = "~/Games/fallout4/pfx/drive_c/Fallout4/Data"
plugins_path = "~/Games/fallout4/plugins.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Games, 2)
	assert.Equal(t, "Skyrim Special Edition", cfg.Games[0].Name)
	assert.Equal(t, "SkyrimSELauncher.exe", cfg.Games[0].LauncherName)
	assert.Equal(t, []string{"Skyrim Special Edition", "Fallout 4"}, cfg.Names())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[games]\nname ="), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "games.toml")
	original := Default()
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestFind(t *testing.T) {
	cfg := Default()

	game, err := cfg.Find("Skyrim Special Edition")
	require.NoError(t, err)
	assert.Contains(t, game.DataPath, "Data")

	_, err = cfg.Find("skyrim special edition")
	require.Error(t, err, "matching is exact")
	assert.True(t, errors.IsErrorCode(err, errors.ErrGameNotFound))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.Games)

	names := cfg.Names()
	assert.Contains(t, names, "Skyrim Special Edition")
	assert.Contains(t, names, "Fallout 4")
	assert.Contains(t, names, "New Vegas")
	assert.Contains(t, names, "Oblivion")

	for _, g := range cfg.Games {
		assert.NotEmpty(t, g.Name)
		assert.NotEmpty(t, g.DataPath, "game %s has no data path", g.Name)
		assert.NotEmpty(t, g.PluginsPath, "game %s has no plugins path", g.Name)
	}
}

func TestString(t *testing.T) {
	out := Config{Games: []Game{{Name: "Test Game", DataPath: "/d", PluginsPath: "/p"}}}.String()
	assert.Contains(t, out, "[[games]]")
	assert.Contains(t, out, "name = 'Test Game'")
}
