package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/build"
	"github.com/arthur-debert/moddeck/pkg/cachesync"
	"github.com/arthur-debert/moddeck/pkg/config"
	"github.com/arthur-debert/moddeck/pkg/errors"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	modlist     string
	mods        string
	overwrite   string
	output      string
	filemap     string
	yes         bool
	pluginsDest string
	noPlugins   bool
	game        string
}

func newBuildCmd() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: MsgBuildShort,
		Long: `Build merges every enabled mod from the modlist into the output Data
folder. Mods are folded bottom to top, so mods higher in the list win
conflicts; the overwrite folder always wins. Files are hardlinked, not
copied, so the Data folder costs no extra disk space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.modlist, "modlist", "m", "", "Path to modlist.txt (required)")
	cmd.Flags().StringVarP(&flags.mods, "mods", "d", "", "Path to the mods folder (required)")
	cmd.Flags().StringVarP(&flags.overwrite, "overwrite", "w", "", "Path to the overwrite folder (highest priority, processed last)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory for the Data folder (default: ./Data beside the binary)")
	cmd.Flags().StringVarP(&flags.filemap, "filemap", "f", "", "Save the destination filemap report to this file")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Automatically answer yes to prompts")
	cmd.Flags().StringVarP(&flags.pluginsDest, "plugins-dest", "p", "", "Destination folder for the plugins.txt symlink")
	cmd.Flags().BoolVar(&flags.noPlugins, "no-plugins", false, "Skip plugins.txt symlinking")
	cmd.Flags().StringVarP(&flags.game, "game", "g", "", "Game profile from games.toml supplying output and plugins paths")
	_ = cmd.MarkFlagRequired("modlist")
	_ = cmd.MarkFlagRequired("mods")

	return cmd
}

func runBuild(cmd *cobra.Command, flags *buildFlags) error {
	logger := logging.GetLogger("cmd.build")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if flags.game != "" {
		if err := applyGameProfile(flags); err != nil {
			return err
		}
	}

	output, err := resolveOutputPath(flags.output)
	if err != nil {
		return err
	}
	if output != flags.output && flags.output != "" {
		fmt.Fprintf(out, MsgOutputAdjusted, output)
	}

	// Preserve the game's shader cache before the old tree goes away
	if flags.overwrite != "" {
		if _, statErr := os.Stat(output); statErr == nil {
			res, syncErr := cachesync.Preserve(ctx, output, flags.overwrite)
			switch {
			case syncErr != nil:
				logger.Warn().Err(syncErr).Msg("ShaderCache preserve failed")
				fmt.Fprintf(out, "WARNING: ShaderCache preserve failed: %v\n", syncErr)
			case res.Synced:
				fmt.Fprintf(out, MsgCachePreserved, res.Files)
			default:
				fmt.Fprintln(out, MsgCacheNone)
			}
		}
	}

	// Destructive step: confirm unless --yes
	if _, statErr := os.Stat(output); statErr == nil {
		fmt.Fprintf(out, MsgOutputExists, output)
		if !flags.yes && !confirm(MsgDeleteConfirm) {
			fmt.Fprintln(out, MsgDeleteAborted)
			return nil
		}
		fmt.Fprintln(out, MsgDeletingOutput)
		if err := build.ResetOutputRoot(ctx, output); err != nil {
			return err
		}
	}

	summary, err := build.Run(ctx, build.Options{
		ModlistPath: flags.modlist,
		ModsRoot:    flags.mods,
		OverlayRoot: flags.overwrite,
		OutputRoot:  output,
		FilemapPath: flags.filemap,
		Progress: func(line string) {
			fmt.Fprintln(out, line)
		},
	})
	if err != nil {
		return err
	}
	logger.Info().Bool("ok", summary.OK).Int("created", summary.Link.Created).
		Int("failed", summary.Link.Failed).Msg("Build finished")

	// Restore the shader cache into the fresh tree
	if flags.overwrite != "" {
		res, syncErr := cachesync.Restore(ctx, flags.overwrite, output)
		switch {
		case syncErr != nil:
			logger.Warn().Err(syncErr).Msg("ShaderCache restore failed")
			fmt.Fprintf(out, "WARNING: ShaderCache restore failed: %v\n", syncErr)
		case res.Synced:
			fmt.Fprintf(out, MsgCacheRestored, res.Files)
		default:
			fmt.Fprintln(out, MsgCacheNone)
		}
	}

	if !flags.noPlugins && flags.pluginsDest != "" {
		linked, linkErr := build.LinkPlugins(ctx, flags.modlist, flags.pluginsDest)
		switch {
		case linkErr != nil:
			logger.Warn().Err(linkErr).Msg("Plugins symlink failed")
			fmt.Fprintf(out, "WARNING: plugins symlink failed: %v\n", linkErr)
		case linked:
			fmt.Fprintln(out, MsgPluginsLinked)
		default:
			fmt.Fprintln(out, MsgPluginsSkipped)
		}
	}

	return nil
}

// applyGameProfile fills unset path flags from the named games.toml
// profile. Explicit flags always win over the profile.
func applyGameProfile(flags *buildFlags) error {
	cfg, err := config.LoadOrDefault(paths.New().GamesConfigPath())
	if err != nil {
		return err
	}
	game, err := cfg.Find(flags.game)
	if err != nil {
		return err
	}

	if flags.output == "" {
		flags.output = paths.ExpandHome(game.DataPath)
	}
	if flags.pluginsDest == "" && game.PluginsPath != "" {
		flags.pluginsDest = filepath.Dir(paths.ExpandHome(game.PluginsPath))
	}
	return nil
}

// resolveOutputPath applies the Data folder convention: default to a
// Data directory beside the binary, and append Data to a user path
// whose base name isn't already Data.
func resolveOutputPath(flag string) (string, error) {
	if flag == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot locate executable for default output path")
		}
		return filepath.Join(filepath.Dir(exe), "Data"), nil
	}
	adjusted, _ := paths.EnsureDataSuffix(flag)
	return adjusted, nil
}
