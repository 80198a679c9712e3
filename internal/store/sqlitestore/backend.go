// Package sqlitestore implements the store contract on an embedded SQLite
// database. It backs local and guest-mode deployments and the test suite.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/promptvault/promptvault/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is how timestamps are persisted; lexicographic order matches
// chronological order.
const timeLayout = time.RFC3339Nano

// Backend implements store.Store over a single SQLite database.
type Backend struct {
	db *sql.DB
}

var _ store.Store = (*Backend)(nil)

// Open creates or opens the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	// A single connection keeps :memory: databases coherent and sidesteps
	// SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema")
	}

	return &Backend{db: db}, nil
}

// Ping verifies the database connection.
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Categories returns the category table accessor.
func (b *Backend) Categories() store.CategoryRepository { return &categoriesTable{db: b.db} }

// Prompts returns the prompt table accessor.
func (b *Backend) Prompts() store.PromptRepository { return &promptsTable{db: b.db} }

// Skills returns the skill table accessor.
func (b *Backend) Skills() store.SkillRepository { return &skillsTable{db: b.db} }

// Tags returns the tag table accessor.
func (b *Backend) Tags() store.TagRepository { return &tagsTable{db: b.db} }

// Versions returns the prompt version table accessor.
func (b *Backend) Versions() store.VersionRepository { return &versionsTable{db: b.db} }

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
