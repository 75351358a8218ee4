package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oshokin/git-version-builder/internal/service/renderer"
)

// languagesCmd lists the registered target languages.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported target languages.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		renderLanguages(cmd, renderer.Default())
	},
}

// renderLanguages prints one table row per registered rule.
func renderLanguages(cmd *cobra.Command, registry *renderer.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Language", "Default file", "Description"})

	for _, rule := range registry.Rules() {
		t.AppendRow(table.Row{rule.Language, rule.DefaultFilename, rule.Description})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
