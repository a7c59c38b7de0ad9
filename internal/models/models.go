package models

import "encoding/json"

// Platforms that social snippets are generated for, in dispatch order.
const (
	PlatformTelegram = "telegram"
	PlatformFacebook = "facebook"
	PlatformTwitter  = "twitter"
)

var Platforms = []string{PlatformTelegram, PlatformFacebook, PlatformTwitter}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

type PostMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

func (m PostMetadata) MarshalJSON() ([]byte, error) {
	type alias PostMetadata
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return json.Marshal(alias(m))
}

type SnippetKind string

const (
	SnippetsStructured SnippetKind = "structured"
	SnippetsRawText    SnippetKind = "raw_text"
)

// SnippetSet holds per-platform social posts. Kind tells whether Posts came
// from a parsed structured answer or were cut from unparseable raw text.
type SnippetSet struct {
	Kind  SnippetKind       `json:"kind"`
	Posts map[string]string `json:"posts"`
	Raw   string            `json:"raw,omitempty"`
}

func (s SnippetSet) Post(platform string) string {
	return s.Posts[platform]
}

type VectorRecord struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	URL      string         `json:"url"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

type VectorHit struct {
	VectorRecord
	Score float64 `json:"score"`
}

type VectorStats struct {
	Posts   int `json:"posts"`
	Sources int `json:"sources"`
}

type Issue struct {
	Repo   string   `json:"repo,omitempty" yaml:"repo"`
	Number int      `json:"number,omitempty" yaml:"number"`
	Title  string   `json:"title" yaml:"title"`
	Body   string   `json:"body" yaml:"body"`
	Labels []string `json:"labels,omitempty" yaml:"labels"`
	Author string   `json:"author,omitempty" yaml:"author"`
}

type IssueAnalysis struct {
	Labels      []string `json:"labels"`
	Checklist   []string `json:"checklist"`
	Suggestions string   `json:"suggestions"`
}

type FixSuggestion struct {
	AutoFixable bool     `json:"auto_fixable"`
	Suggestions string   `json:"suggestions"`
	CodeChanges []string `json:"code_changes"`
}

type SMMReport struct {
	Metadata  PostMetadata      `json:"metadata"`
	Posts     map[string]string `json:"posts"`
	Results   map[string]bool   `json:"results"`
	Timestamp string            `json:"timestamp"`
}
