package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

var log = logging.GetLogger("config")

// Game describes one installed game's locations and launcher metadata.
// The build engine itself only ever receives plain path parameters; this
// record exists for the CLI to resolve a --game name into those paths.
type Game struct {
	Name               string `toml:"name"`
	DataPath           string `toml:"data_path"`
	PluginsPath        string `toml:"plugins_path"`
	DefaultPluginsPath string `toml:"default_plugins_path,omitempty"`
	LauncherName       string `toml:"launcher_name,omitempty"`
	ScriptExtenderName string `toml:"script_extender_name,omitempty"`
	ScriptExtenderURL  string `toml:"script_extender_download,omitempty"`
}

// Config is the content of games.toml
type Config struct {
	Games []Game `toml:"games"`
}

// Load reads and parses a games.toml file
func Load(configPath string) (Config, error) {
	logger := log.With().Str("configPath", configPath).Logger()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read config file").
			WithDetail("path", configPath)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "failed to parse TOML").
			WithDetail("path", configPath)
	}

	logger.Debug().Int("games", len(config.Games)).Msg("Game config loaded")

	return config, nil
}

// LoadOrDefault loads games.toml, falling back to the built-in defaults
// when the file does not exist yet
func LoadOrDefault(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Debug().Str("configPath", configPath).Msg("No config file, using defaults")
		return Default(), nil
	}
	return Load(configPath)
}

// Save writes the config as TOML, creating parent directories as needed
func Save(configPath string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create config directory").
			WithDetail("path", filepath.Dir(configPath))
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to write config file").
			WithDetail("path", configPath)
	}

	log.Info().Str("configPath", configPath).Int("games", len(config.Games)).Msg("Game config saved")
	return nil
}

// Find returns the game with the given name, matched exactly
func (c Config) Find(name string) (Game, error) {
	for _, g := range c.Games {
		if g.Name == name {
			return g, nil
		}
	}
	return Game{}, errors.Newf(errors.ErrGameNotFound, "no game named %q in config", name).
		WithDetail("known", c.Names())
}

// Names lists the configured game names in file order
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Games))
	for _, g := range c.Games {
		names = append(names, g.Name)
	}
	return names
}

// String renders the config as TOML, for genconfig's stdout mode
func (c Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unmarshalable config: %v>", err)
	}
	return string(data)
}
