package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ObiAU/contentagents/internal/models"
	"github.com/tidwall/gjson"
)

// MaxSearchResults caps how many hits a single search returns.
const MaxSearchResults = 8

var ErrSearchDisabled = errors.New("search disabled: TAVILY_API_KEY not set")

// Searcher returns ranked hits for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

type TavilyClient struct {
	apiKey   string
	endpoint string
	enabled  bool
	client   *http.Client
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

func NewTavilyClient(apiKey, endpoint string, enabled bool, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		enabled:  enabled,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// DryRunResults is what Search returns when no search credential is configured.
func DryRunResults() []models.SearchResult {
	return []models.SearchResult{{Title: "Example", URL: "https://example.com", Snippet: "Example snippet"}}
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if !c.enabled {
		log.Println("TAVILY_API_KEY not set - dry-run returning example results")
		return DryRunResults(), nil
	}

	payload, err := json.Marshal(tavilyRequest{APIKey: c.apiKey, Query: query, MaxResults: MaxSearchResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("tavily returned invalid JSON")
	}

	results := make([]models.SearchResult, 0, MaxSearchResults)
	gjson.GetBytes(body, "results").ForEach(func(_, hit gjson.Result) bool {
		snippet := hit.Get("content").String()
		if snippet == "" {
			snippet = hit.Get("snippet").String()
		}
		results = append(results, models.SearchResult{
			Title:   hit.Get("title").String(),
			URL:     hit.Get("url").String(),
			Snippet: snippet,
		})
		return len(results) < MaxSearchResults
	})

	return results, nil
}
