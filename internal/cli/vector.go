package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ObiAU/contentagents/internal/app"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/textutil"
	"github.com/ObiAU/contentagents/internal/vector"
)

var (
	vectorQuery   string
	vectorLimit   int
	vectorType    string
	vectorID      string
	vectorTitle   string
	vectorURL     string
	vectorContent string
)

// vectorsFor is replaced in tests.
var vectorsFor = func(a *app.App) *vector.Client {
	return a.Vectors()
}

var vectorCmd = &cobra.Command{
	Use:   "vector",
	Short: "Search and manage the vector index of posts and sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return errors.New("a command is required: search, stats or add")
	},
}

var vectorSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the records nearest to a query",
	Args:  cobra.NoArgs,
	RunE:  runVectorSearch,
}

var vectorStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts per type",
	Args:  cobra.NoArgs,
	RunE:  runVectorStats,
}

var vectorAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record to the index",
	Args:  cobra.NoArgs,
	RunE:  runVectorAdd,
}

func init() {
	vectorCmd.PersistentFlags().StringVarP(&vectorQuery, "query", "q", "", "search query")
	vectorCmd.PersistentFlags().IntVarP(&vectorLimit, "limit", "l", 5, "number of results to return")
	vectorCmd.PersistentFlags().StringVarP(&vectorType, "type", "t", string(vector.KindSources), "record type: posts or sources")

	vectorAddCmd.Flags().StringVar(&vectorID, "id", "", "record id (generated when empty)")
	vectorAddCmd.Flags().StringVar(&vectorTitle, "title", "", "record title")
	vectorAddCmd.Flags().StringVar(&vectorURL, "url", "", "record URL")
	vectorAddCmd.Flags().StringVar(&vectorContent, "content", "", "record text")

	vectorCmd.AddCommand(vectorSearchCmd, vectorStatsCmd, vectorAddCmd)
	rootCmd.AddCommand(vectorCmd)
}

func openVectors() (*app.App, *vector.Client, error) {
	a := loadApp()
	client := vectorsFor(a)
	if !client.Enabled() {
		a.Close()
		return nil, nil, fmt.Errorf("%w: set OPENAI_API_KEY and check VECTOR_DB_PATH", vector.ErrDisabled)
	}
	return a, client, nil
}

func runVectorSearch(cmd *cobra.Command, _ []string) error {
	if vectorQuery == "" {
		return errors.New("--query is required for search command")
	}
	kind, err := vector.ParseKind(vectorType)
	if err != nil {
		return err
	}

	a, client, err := openVectors()
	if err != nil {
		return err
	}
	defer a.Close()

	hits := client.Search(cmd.Context(), kind, vectorQuery, vectorLimit)

	cmd.Println()
	cmd.Println(headerStyle.Render(fmt.Sprintf("🔍 Search results for: '%s'", vectorQuery)))
	cmd.Printf("Found %d results\n\n", len(hits))
	for i, h := range hits {
		cmd.Printf("%d. %s\n", i+1, h.Title)
		cmd.Printf("   URL: %s\n", h.URL)
		cmd.Printf("   Score: %.4f\n", h.Score)
		cmd.Printf("   Content: %s...\n\n", textutil.Truncate(h.Content, 200))
	}
	return nil
}

func runVectorStats(cmd *cobra.Command, _ []string) error {
	a, client, err := openVectors()
	if err != nil {
		return err
	}
	defer a.Close()

	stats := client.Stats(cmd.Context())

	cmd.Println()
	cmd.Println(headerStyle.Render("📊 Vector Database Statistics"))
	cmd.Printf("Posts: %d\n", stats.Posts)
	cmd.Printf("Sources: %d\n", stats.Sources)
	return nil
}

func runVectorAdd(cmd *cobra.Command, _ []string) error {
	if vectorContent == "" && vectorTitle == "" {
		return errors.New("--content or --title is required for add command")
	}
	kind, err := vector.ParseKind(vectorType)
	if err != nil {
		return err
	}

	a, client, err := openVectors()
	if err != nil {
		return err
	}
	defer a.Close()

	id := vectorID
	if id == "" {
		id = uuid.NewString()
	}
	rec := models.VectorRecord{
		ID:       id,
		Title:    vectorTitle,
		URL:      vectorURL,
		Content:  vectorContent,
		Metadata: map[string]any{"added_by": "cli"},
	}
	if !client.Add(cmd.Context(), kind, rec) {
		return fmt.Errorf("failed to add %s record %s", kind, id)
	}

	cmd.Printf("%s Added %s record %s\n", mark(true), kind, id)
	return nil
}
