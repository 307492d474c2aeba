package config

import (
	"os"
	"path/filepath"
)

// prefix layout inside a Proton compatdata directory
const pfxLocalAppData = "pfx/drive_c/users/steamuser/AppData/Local"

// Default returns the built-in game profiles for a stock Steam install.
// Paths follow the Steam library layout under the user's home directory;
// users with libraries elsewhere edit games.toml afterwards.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	steamCommon := filepath.Join(home, ".local/share/Steam/steamapps/common")
	steamCompat := filepath.Join(home, ".local/share/Steam/steamapps/compatdata")

	pluginsPath := func(appID, dirName string) string {
		return filepath.Join(steamCompat, appID, pfxLocalAppData, dirName)
	}

	games := []Game{
		{
			Name:               "Skyrim Special Edition",
			DataPath:           filepath.Join(steamCommon, "Skyrim Special Edition/Data"),
			PluginsPath:        pluginsPath("489830", "Skyrim Special Edition"),
			DefaultPluginsPath: pluginsPath("489830", "Skyrim Special Edition"),
			LauncherName:       "SkyrimSELauncher.exe",
			ScriptExtenderName: "skse64_loader.exe",
			ScriptExtenderURL:  "https://skse.silverlock.org/",
		},
		{
			Name:               "Skyrim",
			DataPath:           filepath.Join(steamCommon, "Skyrim/Data"),
			PluginsPath:        pluginsPath("72850", "Skyrim"),
			DefaultPluginsPath: pluginsPath("72850", "Skyrim"),
			LauncherName:       "SkyrimLauncher.exe",
			ScriptExtenderName: "skse_loader.exe",
			ScriptExtenderURL:  "https://skse.silverlock.org/",
		},
		{
			Name:               "Fallout 4",
			DataPath:           filepath.Join(steamCommon, "Fallout 4/Data"),
			PluginsPath:        pluginsPath("377160", "Fallout4"),
			DefaultPluginsPath: pluginsPath("377160", "Fallout4"),
			LauncherName:       "Fallout4Launcher.exe",
			ScriptExtenderName: "f4se_loader.exe",
			ScriptExtenderURL:  "https://f4se.silverlock.org/",
		},
		{
			Name:               "Fallout 3",
			DataPath:           filepath.Join(steamCommon, "Fallout 3/Data"),
			PluginsPath:        pluginsPath("22300", "Fallout3"),
			DefaultPluginsPath: pluginsPath("22300", "Fallout3"),
			LauncherName:       "Fallout3Launcher.exe",
			ScriptExtenderName: "fose_loader.exe",
			ScriptExtenderURL:  "https://fose.silverlock.org/",
		},
		{
			Name:               "Fallout 3 GOTY",
			DataPath:           filepath.Join(steamCommon, "Fallout 3 goty/Data"),
			PluginsPath:        pluginsPath("22370", "Fallout3"),
			DefaultPluginsPath: pluginsPath("22370", "Fallout3"),
			LauncherName:       "Fallout3Launcher.exe",
			ScriptExtenderName: "fose_loader.exe",
			ScriptExtenderURL:  "https://fose.silverlock.org/",
		},
		{
			Name:               "New Vegas",
			DataPath:           filepath.Join(steamCommon, "Fallout New Vegas/Data"),
			PluginsPath:        pluginsPath("22380", "FalloutNV"),
			DefaultPluginsPath: pluginsPath("22380", "FalloutNV"),
			LauncherName:       "FalloutNVLauncher.exe",
			ScriptExtenderName: "nvse_loader.exe",
			ScriptExtenderURL:  "https://github.com/xNVSE/NVSE/releases",
		},
		{
			Name:               "Oblivion",
			DataPath:           filepath.Join(steamCommon, "Oblivion/Data"),
			PluginsPath:        pluginsPath("22330", "Oblivion"),
			DefaultPluginsPath: pluginsPath("22330", "Oblivion"),
			LauncherName:       "OblivionLauncher.exe",
			ScriptExtenderName: "obse_loader.exe",
			ScriptExtenderURL:  "https://obse.silverlock.org/",
		},
	}

	return Config{Games: games}
}
