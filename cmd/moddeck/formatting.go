package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/moddeck/pkg/style"
)

// formatBold renders s with the Emphasis style. Non-terminal output
// degrades to the plain string.
func formatBold(s string) string {
	return style.Render("Emphasis", s)
}

// confirm asks the user a yes/no question on the terminal. Returns
// false when stdin is not interactive; destructive actions then need an
// explicit --yes.
func confirm(question string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(question)
	if err != nil {
		return false
	}
	return ok
}
