package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ObiAU/contentagents/internal/models"
)

const dbFile = "vectors.db"

// SQLiteStore keeps one table per record kind. Rows are append-only.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vector db dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFile)+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	for _, kind := range Kinds {
		schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding BLOB NOT NULL,
			metadata TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_id ON %s(id);`, kind, kind, kind)
		if _, err := s.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Insert(ctx context.Context, kind Kind, rec models.VectorRecord, embedding []float32) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, title, url, content, embedding, metadata) VALUES (?, ?, ?, ?, ?, ?)`, kind)
	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Title, rec.URL, rec.Content, SerializeEmbedding(embedding), string(meta),
	)
	return err
}

func (s *SQLiteStore) Search(ctx context.Context, kind Kind, embedding []float32, limit int) ([]models.VectorHit, error) {
	query := fmt.Sprintf(`SELECT id, title, url, content, embedding, metadata FROM %s`, kind)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []models.VectorHit
	for rows.Next() {
		var (
			hit  models.VectorHit
			blob []byte
			meta string
		)
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.URL, &hit.Content, &blob, &meta); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(meta), &hit.Metadata); err != nil {
			hit.Metadata = map[string]any{}
		}
		hit.Score = SquaredL2(embedding, DeserializeEmbedding(blob))
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score < hits[j].Score
	})
	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *SQLiteStore) Count(ctx context.Context, kind Kind) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, kind)).Scan(&count)
	return count, err
}
