package ai

import (
	"strings"

	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/textutil"
	"github.com/tidwall/gjson"
)

// RawSnippetLimit bounds each platform's text when the model answer could not
// be parsed as JSON.
const RawSnippetLimit = 280

// ExtractJSON returns the JSON object embedded in an LLM answer, tolerating
// Markdown code fences and leading prose. It returns "" if none is found.
func ExtractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if gjson.Valid(text) {
		return text
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return ""
	}
	return candidate
}

// ParseSnippets turns a model answer into a SnippetSet. A JSON object with at
// least one platform key yields the structured variant; anything else yields
// the raw-text variant with the answer truncated for every platform.
func ParseSnippets(raw string) models.SnippetSet {
	if body := ExtractJSON(raw); body != "" {
		parsed := gjson.Parse(body)
		if parsed.IsObject() {
			posts := make(map[string]string, len(models.Platforms))
			found := false
			for _, platform := range models.Platforms {
				value := parsed.Get(platform)
				if value.Exists() {
					found = true
				}
				posts[platform] = value.String()
			}
			if found {
				return models.SnippetSet{Kind: models.SnippetsStructured, Posts: posts}
			}
		}
	}

	truncated := textutil.Truncate(strings.TrimSpace(raw), RawSnippetLimit)
	posts := make(map[string]string, len(models.Platforms))
	for _, platform := range models.Platforms {
		posts[platform] = truncated
	}
	return models.SnippetSet{Kind: models.SnippetsRawText, Posts: posts, Raw: raw}
}
