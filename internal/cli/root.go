// Package cli wires the pipelines to the agents command line.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ObiAU/contentagents/internal/app"
	"github.com/ObiAU/contentagents/internal/config"
)

// loadApp is replaced in tests.
var loadApp = func() *app.App {
	return app.New(config.Load())
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

var rootCmd = &cobra.Command{
	Use:   "agents",
	Short: "Content automation agents",
	Long: `Agents that draft, research and distribute content.

Every integration is gated by an environment variable. Without
OPENAI_API_KEY, TAVILY_API_KEY and the platform tokens the pipelines
run in dry-run mode and produce deterministic placeholder output.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func mark(ok bool) string {
	if ok {
		return okStyle.Render("✅")
	}
	return failStyle.Render("❌")
}

func printFiles(cmd *cobra.Command, files []string) {
	for _, f := range files {
		cmd.Println(dimStyle.Render("  " + f))
	}
}
