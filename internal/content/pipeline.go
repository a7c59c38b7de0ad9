// Package content turns a topic or outline into a draft, a critique, an SEO
// checklist and social snippets.
package content

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

// Indexer stores generated posts for later retrieval.
type Indexer interface {
	Add(ctx context.Context, kind vector.Kind, rec models.VectorRecord) bool
}

type Pipeline struct {
	features config.Features
	llm      ai.Completer
	out      *output.Writer
	index    Indexer
}

type Result struct {
	Outline  string
	Draft    string
	Critique string
	SEO      string
	Social   models.SnippetSet
	Files    []string
}

func New(features config.Features, llm ai.Completer, out *output.Writer, index Indexer) *Pipeline {
	return &Pipeline{features: features, llm: llm, out: out, index: index}
}

func (p *Pipeline) live() bool {
	return p.features.LLMEnabled && p.llm != nil
}

func (p *Pipeline) complete(ctx context.Context, step, prompt string) (string, bool) {
	text, err := p.llm.Complete(ctx, ai.ContentSystemPrompt, prompt)
	if err != nil {
		log.Printf("Failed to %s: %v", step, err)
		return "", false
	}
	return text, true
}

func (p *Pipeline) CreateOutline(ctx context.Context, topic string) string {
	if p.live() {
		if text, ok := p.complete(ctx, "create outline", ai.OutlinePrompt(topic)); ok {
			return text
		}
	}
	return dryRunOutline(topic)
}

func (p *Pipeline) ExpandDraft(ctx context.Context, outline string, sources []models.Source) string {
	if p.live() {
		if text, ok := p.complete(ctx, "expand draft", ai.DraftExpansionPrompt(outline, sourcesContext(sources))); ok {
			return text
		}
	}
	return dryRunDraft(outline)
}

func (p *Pipeline) SelfCritique(ctx context.Context, draft string) string {
	if p.live() {
		if text, ok := p.complete(ctx, "critique draft", ai.SelfCritiquePrompt(draft)); ok {
			return text
		}
	}
	return dryRunCritique
}

func (p *Pipeline) SEOChecklist(ctx context.Context, draft string) string {
	if p.live() {
		if text, ok := p.complete(ctx, "build SEO checklist", ai.SEOChecklistPrompt(draft)); ok {
			return text
		}
	}
	return dryRunSEO
}

func (p *Pipeline) GenerateSocialSnippets(ctx context.Context, draft string) models.SnippetSet {
	if p.live() {
		if text, ok := p.complete(ctx, "generate social snippets", ai.SocialSnippetsPrompt(draft)); ok {
			return ai.ParseSnippets(text)
		}
	}
	return dryRunSnippets(draft)
}

// Run reads input as an outline file when such a file exists and treats it as
// a topic otherwise, then writes the draft, critique, SEO and social artifacts.
// Sources, when given, are passed to the draft expansion as extra context.
func (p *Pipeline) Run(ctx context.Context, input string, sources []models.Source) (*Result, error) {
	res := &Result{}

	if data, err := os.ReadFile(input); err == nil {
		res.Outline = string(data)
		log.Printf("Read outline from: %s", input)
	} else {
		res.Outline = p.CreateOutline(ctx, input)
		log.Printf("Created outline for: %s", input)
	}

	res.Draft = p.ExpandDraft(ctx, res.Outline, sources)
	res.Critique = p.SelfCritique(ctx, res.Draft)
	res.SEO = p.SEOChecklist(ctx, res.Draft)
	res.Social = p.GenerateSocialSnippets(ctx, res.Draft)

	writes := []struct {
		prefix string
		ext    string
		body   string
	}{
		{"draft", "md", res.Draft},
		{"critique", "md", res.Critique},
		{"seo", "md", res.SEO},
	}
	for _, w := range writes {
		path, err := p.out.WriteText(w.prefix, w.ext, w.body)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
	}
	path, err := p.out.WriteJSON("social", res.Social)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	if p.index != nil {
		stamp := p.out.Stamp()
		p.index.Add(ctx, vector.KindPosts, models.VectorRecord{
			ID:       "draft-" + stamp,
			Title:    draftTitle(res.Draft),
			Content:  res.Draft,
			Metadata: map[string]any{"stamp": stamp, "kind": "draft"},
		})
	}

	return res, nil
}

func sourcesContext(sources []models.Source) string {
	if len(sources) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range sources {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", s.Title, s.URL, textutil.Truncate(s.Excerpt, 300)))
	}
	return sb.String()
}
