package smm

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

type fakeSender struct {
	err  error
	sent []string
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) Complete(context.Context, string, string) (string, error) {
	return f.answer, f.err
}

type recordingIndex struct {
	records []models.VectorRecord
}

func (r *recordingIndex) Add(_ context.Context, _ vector.Kind, rec models.VectorRecord) bool {
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

func writePost(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGenerateSocialPosts_Templates(t *testing.T) {
	p := New(config.Features{}, nil, nil, testWriter(t), nil)

	posts := p.GenerateSocialPosts(context.Background(), models.PostMetadata{Title: "Go 1.24", Description: "What changed"}, "")

	assert.Equal(t, "📝 Go 1.24\n\nWhat changed...\n\nRead more: [URL]", posts.Post(models.PlatformTelegram))
	assert.Equal(t, "Go 1.24\n\nWhat changed...\n\nRead more: [URL]", posts.Post(models.PlatformFacebook))
	assert.Equal(t, "Go 1.24\n\nWhat changed...\n\n#blog #tech", posts.Post(models.PlatformTwitter))
}

func TestGenerateSocialPosts_DefaultsAndURL(t *testing.T) {
	p := New(config.Features{}, nil, nil, testWriter(t), nil)

	posts := p.GenerateSocialPosts(context.Background(), models.PostMetadata{URL: "https://blog.test/p"}, "")
	assert.Equal(t, "📝 New Post\n\nCheck out our latest post!...\n\nRead more: https://blog.test/p", posts.Post(models.PlatformTelegram))

	long := strings.Repeat("d", 300)
	posts = p.GenerateSocialPosts(context.Background(), models.PostMetadata{Description: long}, "")
	assert.Contains(t, posts.Post(models.PlatformFacebook), strings.Repeat("d", 200)+"...")
	assert.NotContains(t, posts.Post(models.PlatformFacebook), strings.Repeat("d", 201))
}

func TestGenerateSocialPosts_Live(t *testing.T) {
	llm := &fakeLLM{answer: `{"telegram":"tg","facebook":"fb","twitter":"tw"}`}
	p := New(config.Features{LLMEnabled: true}, llm, nil, testWriter(t), nil)

	posts := p.GenerateSocialPosts(context.Background(), models.PostMetadata{}, "body")
	assert.Equal(t, "tw", posts.Post(models.PlatformTwitter))

	llm.err = errors.New("down")
	posts = p.GenerateSocialPosts(context.Background(), models.PostMetadata{}, "body")
	assert.Contains(t, posts.Post(models.PlatformTwitter), "#blog #tech")
}

func TestTelegramDispatcher(t *testing.T) {
	sender := &fakeSender{}

	disabled := NewTelegramDispatcher(config.Features{TelegramEnabled: false}, sender)
	assert.False(t, disabled.Dispatch(context.Background(), "hi"))
	assert.Empty(t, sender.sent, "unconfigured telegram must not send")

	enabled := NewTelegramDispatcher(config.Features{TelegramEnabled: true}, sender)
	assert.True(t, enabled.Dispatch(context.Background(), "hi"))
	assert.Equal(t, []string{"hi"}, sender.sent)

	sender.err = errors.New("chat not found")
	assert.False(t, enabled.Dispatch(context.Background(), "again"))
}

func TestStubDispatchersAlwaysFail(t *testing.T) {
	all := config.Features{FacebookEnabled: true, TwitterEnabled: true}
	for _, d := range []Dispatcher{
		NewFacebookDispatcher(all),
		NewTwitterDispatcher(all),
		NewFacebookDispatcher(config.Features{}),
		NewTwitterDispatcher(config.Features{}),
	} {
		assert.False(t, d.Dispatch(context.Background(), "post"), d.Platform())
	}
}

func TestRun_WritesReport(t *testing.T) {
	out := testWriter(t)
	sender := &fakeSender{}
	features := config.Features{TelegramEnabled: true}
	index := &recordingIndex{}
	p := New(features, nil, []Dispatcher{
		NewTelegramDispatcher(features, sender),
		NewFacebookDispatcher(features),
		NewTwitterDispatcher(features),
	}, out, index)

	res, err := p.Run(context.Background(), writePost(t, "title: Héllo\ndescription: World\ntags: [a, b]\n\n# Body"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out.Dir, "smm-20250501-1030.json"), res.File)
	assert.Equal(t, map[string]bool{"telegram": true, "facebook": false, "twitter": false}, res.Report.Results)
	require.Len(t, sender.sent, 1)
	assert.True(t, strings.HasPrefix(sender.sent[0], "📝 Héllo"))

	data, err := os.ReadFile(res.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Héllo")

	var report models.SMMReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "20250501-1030", report.Timestamp)
	assert.Equal(t, []string{"a", "b"}, report.Metadata.Tags)
	assert.Len(t, report.Posts, 3)

	require.Len(t, index.records, 1)
	assert.Equal(t, "smm-20250501-1030", index.records[0].ID)
	assert.Equal(t, "Héllo", index.records[0].Title)
}

func TestRun_MissingFile(t *testing.T) {
	p := New(config.Features{}, nil, nil, testWriter(t), nil)

	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestRun_NoDispatchersReportsFalse(t *testing.T) {
	p := New(config.Features{}, nil, nil, testWriter(t), nil)

	res, err := p.Run(context.Background(), writePost(t, "# Just a heading"))
	require.NoError(t, err)

	for _, platform := range models.Platforms {
		assert.False(t, res.Report.Results[platform])
	}
	assert.Equal(t, []string{}, res.Report.Metadata.Tags)
}
