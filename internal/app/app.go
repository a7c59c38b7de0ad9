// Package app builds the pipelines from one resolved configuration.
package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/content"
	"github.com/ObiAU/contentagents/internal/devhelper"
	"github.com/ObiAU/contentagents/internal/output"
	"github.com/ObiAU/contentagents/internal/research"
	"github.com/ObiAU/contentagents/internal/smm"
	"github.com/ObiAU/contentagents/internal/sources"
	"github.com/ObiAU/contentagents/internal/telegram"
	"github.com/ObiAU/contentagents/internal/vector"
)

type App struct {
	config   *config.Config
	features config.Features
	aiClient *ai.OpenAIClient
	search   *sources.TavilyClient
	fetcher  *sources.Fetcher
	out      *output.Writer
	bot      *telegram.Bot

	mu      sync.Mutex
	vectors *vector.Client
}

func New(cfg *config.Config) *App {
	features := cfg.Features()

	var aiClient *ai.OpenAIClient
	if features.LLMEnabled {
		aiClient = ai.NewOpenAIClient(cfg)
	} else {
		log.Println("OPENAI_API_KEY not set - running in dry-run mode")
	}

	return &App{
		config:   cfg,
		features: features,
		aiClient: aiClient,
		search:   sources.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyEndpoint, features.SearchEnabled, cfg.HTTPTimeout),
		fetcher:  sources.NewFetcher(cfg.HTTPTimeout, cfg.FetchInterval),
		out:      output.NewWriter(cfg.OutDir),
		bot:      telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, cfg.HTTPTimeout),
	}
}

func (a *App) Features() config.Features {
	return a.features
}

func (a *App) completer() ai.Completer {
	if a.aiClient == nil {
		return nil
	}
	return a.aiClient
}

func (a *App) embedder() vector.Embedder {
	if a.aiClient == nil {
		return nil
	}
	return a.aiClient
}

// Vectors opens the vector client on first use. A client that failed to open
// stays disabled for the rest of the run.
func (a *App) Vectors() *vector.Client {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.vectors == nil {
		a.vectors = vector.Open(a.config.VectorDBPath, a.embedder())
	}
	return a.vectors
}

// index is the optional sink the pipelines store their output in. It is nil
// when vector search is unavailable, so pipelines skip indexing silently.
func (a *App) index() *vector.Client {
	if a.embedder() == nil {
		return nil
	}
	if c := a.Vectors(); c.Enabled() {
		return c
	}
	return nil
}

func (a *App) Content() *content.Pipeline {
	var index content.Indexer
	if ix := a.index(); ix != nil {
		index = ix
	}
	return content.New(a.features, a.completer(), a.out, index)
}

func (a *App) Research() *research.Pipeline {
	opts := research.Options{
		Features:    a.features,
		LLM:         a.completer(),
		Search:      a.search,
		Fetcher:     a.fetcher,
		Out:         a.out,
		UseWorkflow: !strings.EqualFold(a.config.ResearchWorkflow, "simple"),
	}
	if ix := a.index(); ix != nil {
		opts.Index = ix
	}
	return research.New(opts)
}

func (a *App) SMM() *smm.Pipeline {
	dispatchers := []smm.Dispatcher{
		smm.NewTelegramDispatcher(a.features, a.bot),
		smm.NewFacebookDispatcher(a.features),
		smm.NewTwitterDispatcher(a.features),
	}
	var index smm.Indexer
	if ix := a.index(); ix != nil {
		index = ix
	}
	return smm.New(a.features, a.completer(), dispatchers, a.out, index)
}

func (a *App) Dev() *devhelper.Helper {
	return devhelper.New(a.features, a.completer(), a.config.Linter)
}

func (a *App) GitHub(ctx context.Context) *devhelper.GitHubClient {
	return devhelper.NewGitHubClient(ctx, a.config.GitHubToken, a.config.HTTPTimeout)
}

// CacheStats reports the page cache of this run's fetcher.
func (a *App) CacheStats() map[string]interface{} {
	return a.fetcher.CacheStats()
}

func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.vectors == nil {
		return nil
	}
	return a.vectors.Close()
}
