package main

import (
	"fmt"

	"github.com/arthur-debert/moddeck/internal/version"
	"github.com/arthur-debert/moddeck/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "moddeck",
		Short: MsgRootShort,
		Long: `moddeck merges a priority-ordered list of mods into a single
hardlinked Data folder, resolving folder-name case conflicts the way a
case-insensitive game engine expects. Built for Mod Organizer style
mod lists on Linux and the Steam Deck.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newDocsCmd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("moddeck version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: MsgCompletionShort,
	Long: `To load completions:

Bash:
  $ source <(moddeck completion bash)

Zsh:
  $ moddeck completion zsh > "${fpath[1]}/_moddeck"

Fish:
  $ moddeck completion fish | source

PowerShell:
  PS> moddeck completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}
