// Package research collects web sources for a topic and synthesizes a draft
// from them.
package research

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/output"
	"github.com/ObiAU/contentagents/internal/sources"
	"github.com/ObiAU/contentagents/internal/textutil"
	"github.com/ObiAU/contentagents/internal/vector"
)

const (
	DefaultTopic = "Auto-generated topic"

	// MaxExcerptChars bounds the excerpt kept for each source.
	MaxExcerptChars = 2000

	simpleMaxHits      = 5
	promptExcerptChars = 300
	dryRunPromptChars  = 1000
)

type Indexer interface {
	Add(ctx context.Context, kind vector.Kind, rec models.VectorRecord) bool
}

type Pipeline struct {
	features    config.Features
	llm         ai.Completer
	search      sources.Searcher
	fetcher     sources.TextFetcher
	out         *output.Writer
	index       Indexer
	useWorkflow bool
	now         func() time.Time
}

type Options struct {
	Features    config.Features
	LLM         ai.Completer
	Search      sources.Searcher
	Fetcher     sources.TextFetcher
	Out         *output.Writer
	Index       Indexer
	UseWorkflow bool
}

type Result struct {
	Method  string
	Draft   string
	Sources []models.Source
	Files   []string
}

func New(opts Options) *Pipeline {
	return &Pipeline{
		features:    opts.Features,
		llm:         opts.LLM,
		search:      opts.Search,
		fetcher:     opts.Fetcher,
		out:         opts.Out,
		index:       opts.Index,
		useWorkflow: opts.UseWorkflow,
		now:         time.Now,
	}
}

func (p *Pipeline) live() bool {
	return p.features.LLMEnabled && p.llm != nil
}

// Synthesize drafts an article from a prepared prompt. Without an LLM, or when
// the call fails, it echoes the head of the prompt under a placeholder heading.
func (p *Pipeline) Synthesize(ctx context.Context, prompt string) string {
	if p.live() {
		draft, err := p.llm.Complete(ctx, ai.ResearchSystemPrompt, prompt)
		if err == nil {
			return draft
		}
		log.Printf("Failed to synthesize draft: %v", err)
	}
	return "# DRAFT (LLM disabled)\n\n" + textutil.Truncate(prompt, dryRunPromptChars)
}

// RunSimple searches the topic itself, keeps every one of the first hits and
// drafts from their excerpts.
func (p *Pipeline) RunSimple(ctx context.Context, topic string) (string, []models.Source) {
	hits, err := p.search.Search(ctx, topic)
	if err != nil {
		log.Printf("Failed to search %q: %v", topic, err)
		hits = nil
	}
	if len(hits) > simpleMaxHits {
		hits = hits[:simpleMaxHits]
	}

	notes := make([]models.Source, 0, len(hits))
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		text := p.fetcher.FetchText(ctx, h.URL)
		note := models.Source{URL: h.URL, Title: h.Title, Excerpt: textutil.Truncate(text, MaxExcerptChars)}
		notes = append(notes, note)
		lines = append(lines, fmt.Sprintf("- %s: %s", note.URL, textutil.Truncate(note.Excerpt, promptExcerptChars)))
	}

	prompt := fmt.Sprintf("Topic: %s\n\nSources:\n%s", topic, strings.Join(lines, "\n\n"))
	return p.Synthesize(ctx, prompt), notes
}

// Run tries the structured workflow first and falls back to the simple path
// when it is skipped or ends in error. It writes draft-*.md and sources-*.json.
func (p *Pipeline) Run(ctx context.Context, topic string) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}

	res := &Result{}
	wf := p.RunWorkflow(ctx, topic)
	if wf.Status == StatusCompleted && wf.Method == MethodWorkflow {
		res.Method = MethodWorkflow
		res.Draft = wf.State.Draft
		res.Sources = wf.State.Sources
	} else {
		if wf.Status == StatusError {
			log.Printf("Research workflow failed: %v, falling back to simple workflow", wf.Err)
		}
		res.Method = MethodSimple
		res.Draft, res.Sources = p.RunSimple(ctx, topic)
	}
	if res.Sources == nil {
		res.Sources = []models.Source{}
	}

	draftPath, err := p.out.WriteText("draft", "md", res.Draft)
	if err != nil {
		return nil, err
	}
	sourcesPath, err := p.out.WriteJSON("sources", res.Sources)
	if err != nil {
		return nil, err
	}
	res.Files = []string{draftPath, sourcesPath}

	p.indexSources(ctx, topic, res.Sources)
	return res, nil
}

func (p *Pipeline) indexSources(ctx context.Context, topic string, found []models.Source) {
	if p.index == nil {
		return
	}
	for _, src := range found {
		if src.Excerpt == "" {
			continue
		}
		p.index.Add(ctx, vector.KindSources, models.VectorRecord{
			ID:       sources.SourceID(src.URL),
			Title:    src.Title,
			URL:      src.URL,
			Content:  src.Excerpt,
			Metadata: map[string]any{"topic": topic},
		})
	}
}
