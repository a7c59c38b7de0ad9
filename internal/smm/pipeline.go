// Package smm turns a Markdown post into per-platform social posts and
// dispatches them.
package smm

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/output"
	"github.com/ObiAU/contentagents/internal/textutil"
	"github.com/ObiAU/contentagents/internal/vector"
)

const (
	defaultTitle       = "New Post"
	defaultDescription = "Check out our latest post!"
	descriptionChars   = 200
)

type Indexer interface {
	Add(ctx context.Context, kind vector.Kind, rec models.VectorRecord) bool
}

type Pipeline struct {
	features config.Features
	llm      ai.Completer
	dispatch []Dispatcher
	out      *output.Writer
	index    Indexer
}

func New(features config.Features, llm ai.Completer, dispatchers []Dispatcher, out *output.Writer, index Indexer) *Pipeline {
	return &Pipeline{features: features, llm: llm, dispatch: dispatchers, out: out, index: index}
}

type Result struct {
	Report models.SMMReport
	File   string
}

// GenerateSocialPosts renders a post per platform. Without an LLM the posts
// come from fixed templates over the metadata.
func (p *Pipeline) GenerateSocialPosts(ctx context.Context, meta models.PostMetadata, content string) models.SnippetSet {
	if p.features.LLMEnabled && p.llm != nil {
		text, err := p.llm.Complete(ctx, ai.ContentSystemPrompt, ai.SocialSnippetsPrompt(postContext(meta, content)))
		if err == nil {
			return ai.ParseSnippets(text)
		}
		log.Printf("Failed to generate social posts: %v", err)
	}
	return templatePosts(meta)
}

func templatePosts(meta models.PostMetadata) models.SnippetSet {
	title := meta.Title
	if title == "" {
		title = defaultTitle
	}
	description := meta.Description
	if description == "" {
		description = defaultDescription
	}
	description = textutil.Truncate(description, descriptionChars)

	link := "[URL]"
	if meta.URL != "" {
		link = meta.URL
	}

	return models.SnippetSet{
		Kind: models.SnippetsStructured,
		Posts: map[string]string{
			models.PlatformTelegram: fmt.Sprintf("📝 %s\n\n%s...\n\nRead more: %s", title, description, link),
			models.PlatformFacebook: fmt.Sprintf("%s\n\n%s...\n\nRead more: %s", title, description, link),
			models.PlatformTwitter:  fmt.Sprintf("%s\n\n%s...\n\n#blog #tech", title, description),
		},
	}
}

func postContext(meta models.PostMetadata, content string) string {
	var sb strings.Builder
	if meta.Title != "" {
		sb.WriteString("Title: " + meta.Title + "\n")
	}
	if meta.Description != "" {
		sb.WriteString("Description: " + meta.Description + "\n")
	}
	if len(meta.Tags) > 0 {
		sb.WriteString("Tags: " + strings.Join(meta.Tags, ", ") + "\n")
	}
	if meta.URL != "" {
		sb.WriteString("URL: " + meta.URL + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(content)
	return sb.String()
}

// Run reads the post file, generates a post per platform, dispatches each one
// and writes smm-*.json with the per-platform results.
func (p *Pipeline) Run(ctx context.Context, postFile string) (*Result, error) {
	data, err := os.ReadFile(postFile)
	if err != nil {
		return nil, fmt.Errorf("read post file: %w", err)
	}
	content := string(data)

	meta := ExtractMetadata(content)
	posts := p.GenerateSocialPosts(ctx, meta, content)

	results := make(map[string]bool, len(models.Platforms))
	for _, platform := range models.Platforms {
		results[platform] = false
	}
	for _, d := range p.dispatch {
		results[d.Platform()] = d.Dispatch(ctx, posts.Post(d.Platform()))
	}

	report := models.SMMReport{
		Metadata:  meta,
		Posts:     posts.Posts,
		Results:   results,
		Timestamp: p.out.Stamp(),
	}
	path, err := p.out.WriteJSON("smm", report)
	if err != nil {
		return nil, err
	}

	if p.index != nil {
		title := meta.Title
		if title == "" {
			title = textutil.FirstHeading(content)
		}
		p.index.Add(ctx, vector.KindPosts, models.VectorRecord{
			ID:       "smm-" + report.Timestamp,
			Title:    title,
			URL:      meta.URL,
			Content:  content,
			Metadata: map[string]any{"tags": meta.Tags, "description": meta.Description},
		})
	}

	return &Result{Report: report, File: path}, nil
}
