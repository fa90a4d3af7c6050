package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCollectionRepository stores each collection as one JSONB array row in
// ledger_collections.
type PgxCollectionRepository struct {
	BaseRepository
}

func newPgxCollectionRepository(pool *pgxpool.Pool) *PgxCollectionRepository {
	return &PgxCollectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CollectionStore = (*PgxCollectionRepository)(nil)

// Get loads the documents of one collection.
func (r *PgxCollectionRepository) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	query := `
		SELECT documents
		FROM ledger_collections
		WHERE name = $1;
	`
	var payload []byte
	err := r.Pool.QueryRow(ctx, query, collection).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("collection %s is not a JSON array: %w", collection, err)
	}
	return docs, nil
}

// Set replaces the documents of one collection.
func (r *PgxCollectionRepository) Set(ctx context.Context, collection string, documents []json.RawMessage) error {
	if documents == nil {
		documents = []json.RawMessage{}
	}
	payload, err := json.Marshal(documents)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}

	query := `
		INSERT INTO ledger_collections (name, documents, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET
			documents = EXCLUDED.documents,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, collection, payload); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", collection, err)
	}
	return nil
}
