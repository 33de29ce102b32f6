package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

const (
	createCollectionsTable = `CREATE TABLE IF NOT EXISTS portal_collections (
	name TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	selectCollection = `SELECT payload FROM portal_collections WHERE name = $1`
	upsertCollection = `INSERT INTO portal_collections (name, payload, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

// PostgresStore keeps each collection as one JSONB row. It swaps in for
// FileStore without changing callers; a save is still a whole-document
// overwrite with no version check.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStore constructs a Postgres-backed collection store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Migrate creates the collections table when absent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCollectionsTable); err != nil {
		return fmt.Errorf("create portal_collections: %w", err)
	}
	return nil
}

// Read implements CollectionStore.
func (s *PostgresStore) Read(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	if err := s.db.GetContext(ctx, &payload, selectCollection, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrCollectionMissing, "")
		}
		return nil, fmt.Errorf("select collection %s: %w", name, err)
	}
	return payload, nil
}

// Write implements CollectionStore.
func (s *PostgresStore) Write(ctx context.Context, name string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertCollection, name, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("upsert collection %s: %w", name, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
