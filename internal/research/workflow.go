package research

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/textutil"
)

const (
	StatusCompleted = "completed"
	StatusError     = "error"
	StatusSkipped   = "skipped"

	MethodWorkflow = "workflow"
	MethodSimple   = "simple"

	resultsPerQuery = 2
)

// State is threaded through the workflow steps: query generation, source
// collection and drafting.
type State struct {
	Topic         string
	SearchQueries []string
	Sources       []models.Source
	Draft         string
	Metadata      map[string]any
}

type WorkflowResult struct {
	Status string
	Method string
	State  *State
	Err    error
}

type step struct {
	name string
	run  func(ctx context.Context, s *State) error
}

// RunWorkflow executes the structured variant. Any step error stops the run
// and is reported through the result rather than returned.
func (p *Pipeline) RunWorkflow(ctx context.Context, topic string) WorkflowResult {
	if !p.useWorkflow {
		return WorkflowResult{Status: StatusSkipped, Method: MethodSimple}
	}

	state := &State{
		Topic:    topic,
		Metadata: map[string]any{"created_at": p.now().UTC().Format(time.RFC3339), "status": "initialized"},
	}
	steps := []step{
		{"generate queries", p.generateQueries},
		{"collect sources", p.collectSources},
		{"draft", p.draftFromState},
	}

	for _, st := range steps {
		if err := st.run(ctx, state); err != nil {
			log.Printf("Error in research workflow (%s): %v", st.name, err)
			state.Metadata["status"] = StatusError
			state.Metadata["failed_step"] = st.name
			return WorkflowResult{Status: StatusError, Method: MethodWorkflow, State: state, Err: err}
		}
	}

	state.Metadata["status"] = StatusCompleted
	state.Metadata["sources"] = len(state.Sources)
	return WorkflowResult{Status: StatusCompleted, Method: MethodWorkflow, State: state}
}

func (p *Pipeline) generateQueries(_ context.Context, s *State) error {
	s.SearchQueries = []string{
		s.Topic + " latest trends",
		s.Topic + " expert analysis",
		s.Topic + " case studies",
	}
	return nil
}

func (p *Pipeline) collectSources(ctx context.Context, s *State) error {
	for _, query := range s.SearchQueries {
		results, err := p.search.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}
		if len(results) > resultsPerQuery {
			results = results[:resultsPerQuery]
		}
		for _, r := range results {
			text := p.fetcher.FetchText(ctx, r.URL)
			if text == "" {
				continue
			}
			title := r.Title
			if title == "" {
				title = "Untitled"
			}
			s.Sources = append(s.Sources, models.Source{
				URL:     r.URL,
				Title:   title,
				Excerpt: textutil.Truncate(text, MaxExcerptChars),
			})
		}
	}
	return nil
}

func (p *Pipeline) draftFromState(ctx context.Context, s *State) error {
	if !p.live() {
		s.Draft = fmt.Sprintf("# DRAFT (LLM disabled)\n\nTopic: %s\n\nSources found: %d", s.Topic, len(s.Sources))
		return nil
	}

	lines := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		lines = append(lines, fmt.Sprintf("- %s: %s...", src.Title, textutil.Truncate(src.Excerpt, promptExcerptChars)))
	}

	draft, err := p.llm.Complete(ctx, ai.ResearchSystemPrompt, ai.ResearchDraftPrompt(s.Topic, strings.Join(lines, "\n\n")))
	if err != nil {
		return fmt.Errorf("synthesize draft: %w", err)
	}
	s.Draft = draft
	return nil
}
