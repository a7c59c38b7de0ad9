package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic...]",
	Short: "Research a topic and synthesize a draft",
	Long: `Searches the web for a topic, fetches the top sources and synthesizes a
draft from them. The structured workflow runs first and the simple path
takes over if it fails.`,
	Args: cobra.ArbitraryArgs,
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	a := loadApp()
	defer a.Close()

	res, err := a.Research().Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	cmd.Printf("%s %s (%s workflow, %d sources)\n", mark(true), headerStyle.Render("Research completed"), res.Method, len(res.Sources))
	printFiles(cmd, res.Files)

	stats := a.CacheStats()
	cmd.Println(dimStyle.Render(fmt.Sprintf("  pages fetched: %v, cache hits: %v", stats["misses"], stats["hits"])))
	return nil
}
