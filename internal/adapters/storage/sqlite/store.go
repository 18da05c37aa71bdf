package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hylla/tidplan/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// projectKey is the single key the whole project document lives under.
const projectKey = "project-timeline"

// Store persists the project as one JSON document in a key-value table.
type Store struct {
	db *sql.DB
}

// Open opens the database file, creating it and its directory as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a throwaway in-memory database.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate handles migrate.
func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Save serializes the project and upserts it under the project key.
func (s *Store) Save(ctx context.Context, project domain.Project) error {
	payload, err := json.Marshal(encodeProject(project))
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		projectKey, string(payload))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load reads and decodes the persisted project. The second return value is
// false when no document has been saved yet.
func (s *Store) Load(ctx context.Context) (domain.Project, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?;`, projectKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, false, nil
	}
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("load project: %w", err)
	}

	var doc document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return domain.Project{}, false, fmt.Errorf("decode project: %w", err)
	}
	project, err := decodeProject(doc)
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("decode project: %w", err)
	}
	return project, true, nil
}

// Clear removes the persisted document.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE key = ?;`, projectKey); err != nil {
		return fmt.Errorf("clear project: %w", err)
	}
	return nil
}
