package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "TAVILY_API_KEY", "TAVILY_ENDPOINT", "GITHUB_TOKEN",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "FB_PAGE_TOKEN", "X_API_TOKEN",
		"HTTP_TIMEOUT", "LLM_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "https://api.tavily.com/search", cfg.TavilyEndpoint)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, Features{}, cfg.Features())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("LLM_MAX_TOKENS", "lots")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2000, cfg.MaxTokens)
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Features
	}{
		{
			name: "llm and search",
			cfg:  Config{OpenAIAPIKey: "sk", TavilyAPIKey: "tv"},
			want: Features{LLMEnabled: true, SearchEnabled: true},
		},
		{
			name: "telegram needs chat id",
			cfg:  Config{TelegramToken: "tok"},
			want: Features{},
		},
		{
			name: "telegram with chat id",
			cfg:  Config{TelegramToken: "tok", TelegramChatID: "42"},
			want: Features{TelegramEnabled: true},
		},
		{
			name: "social stubs",
			cfg:  Config{FacebookPageToken: "fb", XAPIToken: "x", GitHubToken: "gh"},
			want: Features{FacebookEnabled: true, TwitterEnabled: true, GitHubEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Features())
		})
	}
}
