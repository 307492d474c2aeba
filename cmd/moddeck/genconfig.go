package main

import (
	"fmt"

	"github.com/arthur-debert/moddeck/pkg/config"
	"github.com/arthur-debert/moddeck/pkg/paths"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var write bool
	var output string

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long: `Gen-config prints the default game profiles as TOML. With --write it
is saved to the moddeck config directory instead, ready to be edited
for non-standard Steam library locations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()

			if output != "" {
				write = true
			}
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), cfg.String())
				return nil
			}

			dest := output
			if dest == "" {
				dest = paths.New().GamesConfigPath()
			}
			if err := config.Save(dest, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, dest)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write config to the config directory instead of stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write config to this path (implies --write)")

	return cmd
}
