package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ObiAU/contentagents/internal/config"
)

func dryRunConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		OutDir:           filepath.Join(dir, "out"),
		VectorDBPath:     filepath.Join(dir, "vector_db"),
		HTTPTimeout:      time.Second,
		ResearchWorkflow: "simple",
		Linter:           "flake8",
	}
}

func TestNew_DryRunDisablesVectors(t *testing.T) {
	cfg := dryRunConfig(t)
	a := New(cfg)
	defer a.Close()

	assert.Equal(t, config.Features{}, a.Features())
	assert.False(t, a.Vectors().Enabled())
	assert.Same(t, a.Vectors(), a.Vectors())

	_, err := os.Stat(cfg.VectorDBPath)
	assert.True(t, os.IsNotExist(err), "a disabled client must not create the database")
}

func TestNew_LLMEnablesVectors(t *testing.T) {
	cfg := dryRunConfig(t)
	cfg.OpenAIAPIKey = "sk-test"
	a := New(cfg)
	defer a.Close()

	assert.True(t, a.Features().LLMEnabled)
	assert.True(t, a.Vectors().Enabled())
	assert.FileExists(t, filepath.Join(cfg.VectorDBPath, "vectors.db"))
}

func TestContentPipelineRunsDry(t *testing.T) {
	cfg := dryRunConfig(t)
	a := New(cfg)
	defer a.Close()

	res, err := a.Content().Run(context.Background(), "Go", nil)
	require.NoError(t, err)
	assert.Len(t, res.Files, 4)
	for _, f := range res.Files {
		assert.Equal(t, cfg.OutDir, filepath.Dir(f))
	}
}

func TestSMMDispatchesNothingWithoutTokens(t *testing.T) {
	a := New(dryRunConfig(t))
	defer a.Close()

	post := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(post, []byte("title: T\n"), 0o644))

	res, err := a.SMM().Run(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"telegram": false, "facebook": false, "twitter": false}, res.Report.Results)
}

func TestCacheStatsStartEmpty(t *testing.T) {
	a := New(dryRunConfig(t))
	defer a.Close()

	stats := a.CacheStats()
	assert.EqualValues(t, 0, stats["hits"])
}
