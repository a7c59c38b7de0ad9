package smm

import (
	"strings"

	"github.com/ObiAU/contentagents/internal/models"
)

// ExtractMetadata scans the post line by line for title:, description:, tags:
// and url: prefixes. A repeated key keeps its last value; any other line is
// ignored.
func ExtractMetadata(markdown string) models.PostMetadata {
	meta := models.PostMetadata{Tags: []string{}}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch key {
		case "title":
			meta.Title = cleanValue(value)
		case "description":
			meta.Description = cleanValue(value)
		case "url":
			meta.URL = cleanValue(value)
		case "tags":
			meta.Tags = parseTags(value)
		}
	}

	return meta
}

func cleanValue(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}

func parseTags(v string) []string {
	v = strings.Trim(strings.TrimSpace(v), "[]")
	if strings.TrimSpace(v) == "" {
		return []string{}
	}

	parts := strings.Split(v, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
