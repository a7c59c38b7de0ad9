package vector

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/textutil"
)

// MaxContentChars bounds the content stored alongside each record.
const MaxContentChars = 1000

var ErrDisabled = errors.New("vector search unavailable")

// Embedder turns text into a fixed-width vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client wraps a Store and an Embedder. A client built without either stays
// disabled for its whole lifetime: Add reports false, Search returns no hits
// and Stats returns zero counts.
type Client struct {
	store    Store
	embedder Embedder
}

func New(store Store, embedder Embedder) *Client {
	if store == nil || embedder == nil {
		return &Client{}
	}
	return &Client{store: store, embedder: embedder}
}

// Open builds a client over the SQLite store in dir. Initialization failures
// are logged and produce a disabled client.
func Open(dir string, embedder Embedder) *Client {
	if embedder == nil {
		log.Println("Embedding model unavailable - vector search disabled")
		return New(nil, nil)
	}

	store, err := OpenSQLiteStore(dir)
	if err != nil {
		log.Printf("Failed to initialize vector store: %v", err)
		return New(nil, nil)
	}
	return New(store, embedder)
}

func (c *Client) Enabled() bool {
	return c != nil && c.store != nil && c.embedder != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.store.Close()
}

func (c *Client) Add(ctx context.Context, kind Kind, rec models.VectorRecord) bool {
	if !c.Enabled() {
		log.Println("Vector store not available")
		return false
	}

	embedding, err := c.embedder.Embed(ctx, strings.TrimSpace(rec.Title+" "+rec.Content))
	if err != nil {
		log.Printf("Failed to embed %s %s: %v", kind, rec.ID, err)
		return false
	}
	if len(embedding) != ai.EmbeddingDimensions {
		log.Printf("Failed to add %s %s: embedding has %d dimensions, want %d", kind, rec.ID, len(embedding), ai.EmbeddingDimensions)
		return false
	}

	rec.Content = textutil.Truncate(rec.Content, MaxContentChars)
	if err := c.store.Insert(ctx, kind, rec, embedding); err != nil {
		log.Printf("Failed to add %s %s: %v", kind, rec.ID, err)
		return false
	}
	return true
}

func (c *Client) Search(ctx context.Context, kind Kind, query string, limit int) []models.VectorHit {
	if !c.Enabled() {
		log.Println("Vector store not available")
		return []models.VectorHit{}
	}

	embedding, err := c.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("Failed to embed query: %v", err)
		return []models.VectorHit{}
	}

	hits, err := c.store.Search(ctx, kind, embedding, limit)
	if err != nil {
		log.Printf("Failed to search %s: %v", kind, err)
		return []models.VectorHit{}
	}
	if hits == nil {
		hits = []models.VectorHit{}
	}
	return hits
}

func (c *Client) Stats(ctx context.Context) models.VectorStats {
	if !c.Enabled() {
		return models.VectorStats{}
	}

	posts, err := c.store.Count(ctx, KindPosts)
	if err != nil {
		log.Printf("Failed to count posts: %v", err)
		return models.VectorStats{}
	}
	sourcesCount, err := c.store.Count(ctx, KindSources)
	if err != nil {
		log.Printf("Failed to count sources: %v", err)
		return models.VectorStats{}
	}
	return models.VectorStats{Posts: posts, Sources: sourcesCount}
}
