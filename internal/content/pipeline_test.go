package content

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/output"
	"github.com/ObiAU/contentagents/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	answer  func(prompt string) (string, error)
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, _ string, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer(prompt)
}

type recordingIndex struct {
	kinds   []vector.Kind
	records []models.VectorRecord
}

func (r *recordingIndex) Add(_ context.Context, kind vector.Kind, rec models.VectorRecord) bool {
	r.kinds = append(r.kinds, kind)
	r.records = append(r.records, rec)
	return true
}

func testWriter(t *testing.T) *output.Writer {
	t.Helper()
	return &output.Writer{
		Dir: filepath.Join(t.TempDir(), "out"),
		Now: func() time.Time { return time.Date(2025, 5, 1, 10, 30, 15, 0, time.UTC) },
	}
}

func TestCreateOutline_DryRun(t *testing.T) {
	p := New(config.Features{}, nil, testWriter(t), nil)

	for _, topic := range []string{"Go generics", "", "Ünïcode & <tags>"} {
		outline := p.CreateOutline(context.Background(), topic)
		assert.Contains(t, outline, "Outline: "+topic)
		assert.True(t, strings.HasSuffix(outline, "*Generated in dry-run mode*"))
	}
}

func TestExpandDraft_DryRunContainsOutline(t *testing.T) {
	p := New(config.Features{}, nil, testWriter(t), nil)

	for _, outline := range []string{"# Outline: Go\n\n## Intro", "plain text outline", ""} {
		draft := p.ExpandDraft(context.Background(), outline, nil)
		assert.Contains(t, draft, outline)
		assert.True(t, strings.HasSuffix(draft, "*Generated in dry-run mode*"))
	}
}

func TestExpandDraft_DryRunTitle(t *testing.T) {
	p := New(config.Features{}, nil, testWriter(t), nil)

	assert.True(t, strings.HasPrefix(p.ExpandDraft(context.Background(), "# Outline: Go Tips", nil), "# DRAFT: Go Tips\n"))
	assert.True(t, strings.HasPrefix(p.ExpandDraft(context.Background(), "no heading", nil), "# DRAFT: Untitled\n"))
}

func TestLLMDisabledIgnoresCompleter(t *testing.T) {
	llm := &fakeLLM{answer: func(string) (string, error) { return "live", nil }}
	p := New(config.Features{LLMEnabled: false}, llm, testWriter(t), nil)

	assert.Equal(t, dryRunCritique, p.SelfCritique(context.Background(), "draft"))
	assert.Equal(t, dryRunSEO, p.SEOChecklist(context.Background(), "draft"))
	assert.Empty(t, llm.prompts)
}

func TestLiveMode_ReturnsModelText(t *testing.T) {
	llm := &fakeLLM{answer: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Create a comprehensive outline"):
			return "# Live outline", nil
		case strings.Contains(prompt, "Expand the following outline"):
			return "# Live draft", nil
		case strings.Contains(prompt, "Critically review"):
			return "critique text", nil
		case strings.Contains(prompt, "SEO optimization"):
			return "seo text", nil
		default:
			return `{"telegram":"t","facebook":"f","twitter":"x"}`, nil
		}
	}}
	p := New(config.Features{LLMEnabled: true}, llm, testWriter(t), nil)
	ctx := context.Background()

	assert.Equal(t, "# Live outline", p.CreateOutline(ctx, "Go"))
	assert.Equal(t, "# Live draft", p.ExpandDraft(ctx, "# Live outline", []models.Source{{URL: "https://go.dev", Title: "Go", Excerpt: "site"}}))
	assert.Contains(t, llm.prompts[1], "- Go (https://go.dev): site")
	assert.Equal(t, "critique text", p.SelfCritique(ctx, "d"))
	assert.Equal(t, "seo text", p.SEOChecklist(ctx, "d"))

	social := p.GenerateSocialSnippets(ctx, "d")
	assert.Equal(t, models.SnippetsStructured, social.Kind)
	assert.Equal(t, "x", social.Post(models.PlatformTwitter))
}

func TestLiveMode_FailuresFallBack(t *testing.T) {
	llm := &fakeLLM{answer: func(string) (string, error) { return "", errors.New("rate limited") }}
	p := New(config.Features{LLMEnabled: true}, llm, testWriter(t), nil)
	ctx := context.Background()

	assert.Contains(t, p.CreateOutline(ctx, "Go"), "Outline: Go")
	assert.Contains(t, p.ExpandDraft(ctx, "my outline", nil), "my outline")
	assert.Equal(t, dryRunCritique, p.SelfCritique(ctx, "d"))
	assert.Equal(t, dryRunSEO, p.SEOChecklist(ctx, "d"))
	assert.Equal(t, models.SnippetsStructured, p.GenerateSocialSnippets(ctx, "# DRAFT: Go\n\nbody").Kind)
}

func TestSocialSnippets_UnparseableAnswer(t *testing.T) {
	llm := &fakeLLM{answer: func(string) (string, error) { return "Here are some posts: great read!", nil }}
	p := New(config.Features{LLMEnabled: true}, llm, testWriter(t), nil)

	social := p.GenerateSocialSnippets(context.Background(), "d")

	assert.Equal(t, models.SnippetsRawText, social.Kind)
	assert.Equal(t, "Here are some posts: great read!", social.Post(models.PlatformTelegram))
}

func TestSocialSnippets_DryRun(t *testing.T) {
	p := New(config.Features{}, nil, testWriter(t), nil)

	social := p.GenerateSocialSnippets(context.Background(), "# DRAFT: Go Tips\n\nGenerics made simple.\n")

	assert.Equal(t, "📝 Go Tips\n\nGenerics made simple....\n\nRead more: [URL]", social.Post(models.PlatformTelegram))
	assert.True(t, strings.HasPrefix(social.Post(models.PlatformFacebook), "Go Tips\n\n"))
	assert.Contains(t, social.Post(models.PlatformTwitter), "#blog #tech")
}

func TestRun_TopicWritesFourArtifacts(t *testing.T) {
	out := testWriter(t)
	index := &recordingIndex{}
	p := New(config.Features{}, nil, out, index)

	res, err := p.Run(context.Background(), "Go generics", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out.Dir, "draft-20250501-1030.md"),
		filepath.Join(out.Dir, "critique-20250501-1030.md"),
		filepath.Join(out.Dir, "seo-20250501-1030.md"),
		filepath.Join(out.Dir, "social-20250501-1030.json"),
	}, res.Files)

	draft, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(draft), "# Outline: Go generics")

	var social models.SnippetSet
	data, err := os.ReadFile(res.Files[3])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &social))
	assert.Len(t, social.Posts, 3)

	require.Len(t, index.records, 1)
	assert.Equal(t, vector.KindPosts, index.kinds[0])
	assert.Equal(t, "draft-20250501-1030", index.records[0].ID)
	assert.Equal(t, "Go generics", index.records[0].Title)
}

func TestRun_ReadsOutlineFile(t *testing.T) {
	outlineFile := filepath.Join(t.TempDir(), "outline.md")
	require.NoError(t, os.WriteFile(outlineFile, []byte("# My Outline\n\n- point"), 0o644))

	p := New(config.Features{}, nil, testWriter(t), nil)
	res, err := p.Run(context.Background(), outlineFile, nil)

	require.NoError(t, err)
	assert.Equal(t, "# My Outline\n\n- point", res.Outline)
	assert.Contains(t, res.Draft, "# DRAFT: My Outline")
}

func TestRun_SameMinuteOverwrites(t *testing.T) {
	out := testWriter(t)
	p := New(config.Features{}, nil, out, nil)

	_, err := p.Run(context.Background(), "first topic", nil)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), "second topic", nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(out.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	draft, err := os.ReadFile(filepath.Join(out.Dir, "draft-20250501-1030.md"))
	require.NoError(t, err)
	assert.Contains(t, string(draft), "second topic")
	assert.NotContains(t, string(draft), "first topic")
}
