package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed manual.md
var manualMarkdown string

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(manualMarkdown))
			return nil
		},
	}
}

// renderMarkdown converts markdown to terminal output, falling back to
// the plain text when rendering fails
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
