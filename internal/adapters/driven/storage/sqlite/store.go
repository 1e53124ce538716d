package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driven"
)

var _ driven.ContentSink = (*Store)(nil)

// Store is a SQLite-backed content sink.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.contentbridge/data/content.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".contentbridge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "content.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Add upserts a content document keyed by its source path.
func (s *Store) Add(ctx context.Context, doc domain.ContentDocument) error {
	if doc.SourcePath == "" {
		return domain.ErrInvalidInput
	}

	headerJSON, err := json.Marshal(doc.Header)
	if err != nil {
		return fmt.Errorf("marshalling header: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content_documents (source_path, header, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			header = excluded.header,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, doc.SourcePath, string(headerJSON), doc.Content, now, now)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a content document by source path.
func (s *Store) Get(ctx context.Context, sourcePath string) (*domain.ContentDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_path, header, content
		FROM content_documents WHERE source_path = ?
	`, sourcePath)

	var doc domain.ContentDocument
	var headerJSON string
	if err := row.Scan(&doc.SourcePath, &headerJSON, &doc.Content); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := json.Unmarshal([]byte(headerJSON), &doc.Header); err != nil {
		return nil, fmt.Errorf("unmarshaling header: %w", err)
	}
	doc.Body = domain.Body{Content: doc.Content}
	doc.IsValid = true

	return &doc, nil
}

// List returns all stored content documents.
func (s *Store) List(ctx context.Context) ([]domain.ContentDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_path, header, content
		FROM content_documents ORDER BY source_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.ContentDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.ContentDocument
		var headerJSON string
		if err := rows.Scan(&doc.SourcePath, &headerJSON, &doc.Content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if err := json.Unmarshal([]byte(headerJSON), &doc.Header); err != nil {
			return nil, fmt.Errorf("unmarshaling header: %w", err)
		}
		doc.Body = domain.Body{Content: doc.Content}
		doc.IsValid = true
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Delete removes a content document by source path.
func (s *Store) Delete(ctx context.Context, sourcePath string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM content_documents WHERE source_path = ?", sourcePath)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
