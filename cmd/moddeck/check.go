package main

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/moddeck/pkg/casefold"
	"github.com/arthur-debert/moddeck/pkg/filemap"
	"github.com/arthur-debert/moddeck/pkg/modlist"
	"github.com/arthur-debert/moddeck/pkg/scanner"
	"github.com/arthur-debert/moddeck/pkg/style"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var modlistPath, modsRoot string

	cmd := &cobra.Command{
		Use:   "check <relative/path>",
		Short: MsgCheckShort,
		Long: `Check reports every enabled mod that provides the given file and
which one wins under the current priority order. Nothing is built or
modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, modlistPath, modsRoot, args[0])
		},
	}

	cmd.Flags().StringVarP(&modlistPath, "modlist", "m", "", "Path to modlist.txt (required)")
	cmd.Flags().StringVarP(&modsRoot, "mods", "d", "", "Path to the mods folder (required)")
	_ = cmd.MarkFlagRequired("modlist")
	_ = cmd.MarkFlagRequired("mods")

	return cmd
}

func runCheck(cmd *cobra.Command, modlistPath, modsRoot, rel string) error {
	out := cmd.OutOrStdout()

	mods, err := modlist.Parse(modlistPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", formatBold("FILE SOURCE CHECK"))
	fmt.Fprintf(out, "Checking: %s\n", rel)
	fmt.Fprintf(out, "Match key (lowercase): %s\n\n", scanner.MatchKey(rel))

	variants := casefold.NewVariants()
	for _, name := range mods {
		scanner.CollectVariants(filepath.Join(modsRoot, name), variants)
	}
	canonical := variants.Resolve()
	fmt.Fprintf(out, "Processing %d mods (bottom to top)...\n\n", len(mods))

	providers := filemap.FindProviders(mods, modsRoot, rel, canonical)
	if len(providers) == 0 {
		fmt.Fprintln(out, MsgCheckNotFound)
		return nil
	}

	fmt.Fprintf(out, MsgCheckFoundIn, len(providers))
	for _, p := range providers {
		status := style.Render("Success", "EXISTS")
		if !p.Exists {
			status = style.Render("Error", "MISSING!")
		}
		fmt.Fprintf(out, "  [%d] %s\n", p.Index, p.Mod)
		fmt.Fprintf(out, "      Original path: %s\n", p.OriginPath)
		fmt.Fprintf(out, "      Normalized:    %s\n", p.NormalizedPath)
		fmt.Fprintf(out, "      Full path:     %s\n", p.Source)
		fmt.Fprintf(out, "      Status:        %s\n\n", status)
	}

	winner := providers[len(providers)-1]
	fmt.Fprintf(out, "%s: %s\n", formatBold("WINNER (highest priority)"), winner.Mod)
	fmt.Fprintf(out, "  Source:    %s\n", winner.Source)
	fmt.Fprintf(out, "  Dest path: %s\n", winner.NormalizedPath)
	return nil
}
