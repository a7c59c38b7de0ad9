package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	LLMModel          string
	EmbeddingModel    string
	TavilyAPIKey      string
	TavilyEndpoint    string
	GitHubToken       string
	TelegramToken     string
	TelegramChatID    string
	FacebookPageToken string
	XAPIToken         string
	OutDir            string
	VectorDBPath      string
	HTTPTimeout       time.Duration
	FetchInterval     time.Duration
	MaxTokens         int
	ResearchWorkflow  string
	Linter            string
}

// Features records which external integrations have credentials. Components
// take it instead of reading the environment so dry-run behaviour is decided once.
type Features struct {
	LLMEnabled      bool
	SearchEnabled   bool
	GitHubEnabled   bool
	TelegramEnabled bool
	FacebookEnabled bool
	TwitterEnabled  bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	return &Config{
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		TavilyAPIKey:      getEnv("TAVILY_API_KEY", ""),
		TavilyEndpoint:    getEnv("TAVILY_ENDPOINT", "https://api.tavily.com/search"),
		GitHubToken:       getEnv("GITHUB_TOKEN", ""),
		TelegramToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnv("TELEGRAM_CHAT_ID", ""),
		FacebookPageToken: getEnv("FB_PAGE_TOKEN", ""),
		XAPIToken:         getEnv("X_API_TOKEN", ""),
		OutDir:            getEnv("OUT_DIR", "out"),
		VectorDBPath:      getEnv("VECTOR_DB_PATH", "vector_db"),
		HTTPTimeout:       getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		FetchInterval:     getEnvAsDuration("FETCH_INTERVAL", 250*time.Millisecond),
		MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 2000),
		ResearchWorkflow:  getEnv("RESEARCH_WORKFLOW", "graph"),
		Linter:            getEnv("LINTER", "flake8"),
	}
}

func (c *Config) Features() Features {
	return Features{
		LLMEnabled:      c.OpenAIAPIKey != "",
		SearchEnabled:   c.TavilyAPIKey != "",
		GitHubEnabled:   c.GitHubToken != "",
		TelegramEnabled: c.TelegramToken != "" && c.TelegramChatID != "",
		FacebookEnabled: c.FacebookPageToken != "",
		TwitterEnabled:  c.XAPIToken != "",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
