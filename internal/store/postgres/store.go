package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"auditease-backend/internal/store"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Entity methods live in separate files:
// store_documents.go, store_audits.go, store_gaps.go.
