// Package paths provides centralized path handling for moddeck.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for moddeck
	EnvConfigDir = "MODDECK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for moddeck
	EnvStateDir = "MODDECK_STATE_DIR"
)

// Directory and file names.
// IMPORTANT: These constants are NOT user-configurable. They must remain
// consistent across installations so profiles and logs keep their place.
const (
	// AppDirName is the directory name for moddeck-specific files
	AppDirName = "moddeck"

	// GamesConfigFile is the name of the game profiles file
	GamesConfigFile = "games.toml"

	// LogFileName is the name of the log file
	LogFileName = "moddeck.log"

	// DataFolderName is the required base name of any output root.
	// The builder refuses to delete or populate anything else.
	DataFolderName = "Data"

	// PluginsFileName is the plugin list expected beside the modlist
	PluginsFileName = "plugins.txt"

	// CacheDirName is the subtree the game writes at runtime. It is
	// synced between the output root and the overlay instead of being
	// folded like mod content.
	CacheDirName = "ShaderCache"

	// ModlistFileName is the conventional name of the priority list
	ModlistFileName = "modlist.txt"
)

// Paths provides centralized path management for moddeck
type Paths struct {
	xdgConfig string
	xdgState  string
}

// New creates a new Paths instance, respecting environment overrides
func New() *Paths {
	p := &Paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// ConfigDir returns the moddeck configuration directory
func (p *Paths) ConfigDir() string {
	return p.xdgConfig
}

// GamesConfigPath returns the path to the game profiles file
func (p *Paths) GamesConfigPath() string {
	return filepath.Join(p.xdgConfig, GamesConfigFile)
}

// StateDir returns the moddeck state directory
func (p *Paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// IsDataFolder reports whether path's base name is the Data folder name,
// compared case-insensitively. This is the safety check guarding deletion.
func IsDataFolder(path string) bool {
	base := filepath.Base(strings.TrimRight(path, string(os.PathSeparator)))
	return strings.EqualFold(base, DataFolderName)
}

// EnsureDataSuffix appends the Data folder name to path unless its base
// name already is it. Returns the adjusted path and whether it changed.
func EnsureDataSuffix(path string) (string, bool) {
	if IsDataFolder(path) {
		return path, false
	}
	return filepath.Join(path, DataFolderName), true
}

// PrefixFromPluginsPath extracts the Wine prefix root from a plugins path.
// Given .../compatdata/377160/pfx/drive_c/users/steamuser/AppData/Local/Fallout4
// it returns .../compatdata/377160. Paths without a pfx component are
// returned unchanged.
func PrefixFromPluginsPath(pluginsPath string) string {
	marker := string(os.PathSeparator) + "pfx" + string(os.PathSeparator)
	if idx := strings.Index(pluginsPath, marker); idx != -1 {
		return pluginsPath[:idx]
	}
	return pluginsPath
}

// ExpandHome expands a leading ~ to the user's home directory. Paths
// without one are returned unchanged, as are paths whose home cannot be
// resolved.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
