// Package sqlite persists the ingested corpus so a generation can be
// rebuilt at startup without re-embedding every chunk.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a SQLite-backed corpus store.
type CorpusStore struct {
	db   *sql.DB
	path string
}

// NewCorpusStore creates a SQLite corpus store at the specified data
// directory. If dataDir is empty, defaults to ~/.recall/data/corpus.db.
func NewCorpusStore(dataDir string) (*CorpusStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &CorpusStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *CorpusStore) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *CorpusStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_corpus.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Replace atomically replaces the stored corpus with the given chunks
// and their embeddings. The whole swap runs in one transaction, so a
// failure leaves the previous corpus intact.
func (s *CorpusStore) Replace(ctx context.Context, chunks []domain.Chunk, embeddings map[string][]float32) error {
	for i := range chunks {
		if _, ok := embeddings[chunks[i].ID]; !ok {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrConfiguration, chunks[i].ID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, content, doc_name, page, position, content_type, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		c := chunks[i]
		embeddingBlob := float32SliceToBytes(embeddings[c.ID])
		if _, err := stmt.ExecContext(ctx, c.ID, c.Content, c.DocName,
			c.Page, c.Position, string(c.ContentType), embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Load returns all stored chunks and embeddings in position order.
func (s *CorpusStore) Load(ctx context.Context) ([]domain.Chunk, map[string][]float32, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, doc_name, page, position, content_type, embedding
		FROM chunks ORDER BY position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	embeddings := make(map[string][]float32)
	for rows.Next() {
		var c domain.Chunk
		var contentType string
		var embeddingBlob []byte
		if err := rows.Scan(&c.ID, &c.Content, &c.DocName, &c.Page,
			&c.Position, &contentType, &embeddingBlob); err != nil {
			return nil, nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.ContentType = domain.ContentType(contentType)
		chunks = append(chunks, c)
		embeddings[c.ID] = bytesToFloat32Slice(embeddingBlob)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, embeddings, nil
}

// Count returns the number of stored chunks.
func (s *CorpusStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
