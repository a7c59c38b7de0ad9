package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ObiAU/contentagents/internal/app"
	"github.com/ObiAU/contentagents/internal/devhelper"
	"github.com/ObiAU/contentagents/internal/models"
)

var (
	devIssueFile string
	devRepo      string
	devNumber    int
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "GitHub issue triage and linting helpers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(headerStyle.Render("Dev Agent - GitHub integration"))
		cmd.Println("Available commands:")
		for i, c := range devhelper.Capabilities() {
			cmd.Printf("%d. %s\n", i+1, c)
		}
		cmd.Println()
		cmd.Println("Set GITHUB_TOKEN and OPENAI_API_KEY for full functionality.")
	},
}

var devAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Suggest labels and a triage checklist for an issue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIssueCommand(cmd, func(a *app.App, issue models.Issue) any {
			return a.Dev().AnalyzeIssue(cmd.Context(), issue)
		})
	},
}

var devFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Suggest code fixes for an issue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIssueCommand(cmd, func(a *app.App, issue models.Issue) any {
			return a.Dev().SuggestFixes(cmd.Context(), issue)
		})
	},
}

var devLintCmd = &cobra.Command{
	Use:   "lint <path>",
	Short: "Run the configured linter on a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp()
		defer a.Close()

		stdout, stderr := a.Dev().RunLinter(cmd.Context(), args[0])
		if stdout != "" {
			cmd.Print(stdout)
		}
		if stderr != "" {
			cmd.Println(failStyle.Render(stderr))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{devAnalyzeCmd, devFixCmd} {
		c.Flags().StringVar(&devIssueFile, "issue", "", "YAML or JSON issue payload file")
		c.Flags().StringVar(&devRepo, "repo", "", "GitHub repository as owner/name")
		c.Flags().IntVar(&devNumber, "number", 0, "issue number in --repo")
		devCmd.AddCommand(c)
	}
	devCmd.AddCommand(devLintCmd)
	rootCmd.AddCommand(devCmd)
}

func runIssueCommand(cmd *cobra.Command, run func(a *app.App, issue models.Issue) any) error {
	if devIssueFile == "" && (devRepo == "" || devNumber <= 0) {
		return errors.New("either --issue or both --repo and --number are required")
	}

	a := loadApp()
	defer a.Close()

	var (
		issue models.Issue
		err   error
	)
	if devIssueFile != "" {
		issue, err = devhelper.LoadIssue(devIssueFile)
	} else {
		issue, err = a.GitHub(cmd.Context()).FetchIssue(cmd.Context(), devRepo, devNumber)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(run(a, issue), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
