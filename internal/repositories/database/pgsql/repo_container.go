package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewCollectionStore returns the primary collection store backed by PostgreSQL.
func NewCollectionStore(dbPool *pgxpool.Pool) *PgxCollectionRepository {
	return newPgxCollectionRepository(dbPool)
}
