package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ObiAU/contentagents/internal/models"
)

var contentSourcesFile string

var contentCmd = &cobra.Command{
	Use:   "content <topic|outline-file>",
	Short: "Generate a draft, critique, SEO checklist and social snippets",
	Long: `Turns a topic, or an existing outline file, into a blog draft with a
self-critique, an SEO checklist and per-platform social snippets.
Artifacts are written to the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContent,
}

func init() {
	contentCmd.Flags().StringVar(&contentSourcesFile, "sources", "", "JSON file of sources to use as extra context")
	rootCmd.AddCommand(contentCmd)
}

func runContent(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")

	var srcs []models.Source
	if contentSourcesFile != "" {
		data, err := os.ReadFile(contentSourcesFile)
		if err != nil {
			return fmt.Errorf("read sources: %w", err)
		}
		if err := json.Unmarshal(data, &srcs); err != nil {
			return fmt.Errorf("parse sources: %w", err)
		}
	}

	a := loadApp()
	defer a.Close()

	res, err := a.Content().Run(cmd.Context(), input, srcs)
	if err != nil {
		return err
	}

	cmd.Println(mark(true) + " " + headerStyle.Render("Content generated"))
	printFiles(cmd, res.Files)
	return nil
}
