package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore keeps slots in the catalog_slots table, one row per key with
// a JSONB value. The table is created by the goose migrations. The store does
// not own the *sql.DB; closing it is the caller's responsibility.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load retrieves the slot value using parameterized queries.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM catalog_slots WHERE slot_key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load slot %q: %w", key, err)
	}
	return value, nil
}

// Save upserts the slot value, replacing any previous document.
func (s *PostgresStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO catalog_slots (slot_key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot row. Deleting an absent slot is a no-op.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM catalog_slots WHERE slot_key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return nil
}
