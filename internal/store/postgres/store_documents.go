package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"auditease-backend/internal/models"
	"auditease-backend/internal/store"
)

// --- Document Methods ---

// CreateDocument inserts a new document record with its extracted text.
func (s *PostgresStore) CreateDocument(ctx context.Context, arg store.CreateDocumentParams) (*models.Document, error) {
	log.Printf("[PostgresStore] CreateDocument called for: %s (ID: %s)", arg.Name, arg.ID)
	query := `
		INSERT INTO documents (id, name, extracted_text)
		VALUES ($1, $2, $3)
		RETURNING id, name, extracted_text, created_at, updated_at`
	// created_at and updated_at have database defaults (NOW())

	doc := &models.Document{}
	err := s.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.ExtractedText).Scan(
		&doc.ID,
		&doc.Name,
		&doc.ExtractedText,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			log.Printf("ERROR [PostgresStore] CreateDocument: PostgreSQL error for %s: Code=%s, Message=%s", arg.Name, pgErr.Code, pgErr.Message)
		} else {
			log.Printf("ERROR [PostgresStore] CreateDocument: Failed insert for %s: %v", arg.Name, err)
		}
		return nil, fmt.Errorf("database error creating document: %w", err)
	}

	log.Printf("[PostgresStore] CreateDocument: Successfully inserted document ID %s", doc.ID)
	return doc, nil
}

// GetDocumentByID retrieves a document including its full extracted text.
// Returns store.ErrNotFound if the document does not exist.
func (s *PostgresStore) GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	log.Printf("[PostgresStore] GetDocumentByID called for ID: %s", id)
	query := `
		SELECT id, name, extracted_text, created_at, updated_at
		FROM documents
		WHERE id = $1`

	doc := &models.Document{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Name,
		&doc.ExtractedText,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetDocumentByID: Failed query/scan for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching document: %w", err)
	}

	return doc, nil
}

// ListDocuments retrieves documents newest-first, without their extracted
// text bodies (listing is metadata only).
func (s *PostgresStore) ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error) {
	log.Printf("[PostgresStore] ListDocuments called (limit=%d, offset=%d)", limit, offset)
	query := `
		SELECT id, name, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListDocuments: Query failed: %v", err)
		return nil, fmt.Errorf("database error listing documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			log.Printf("ERROR [PostgresStore] ListDocuments: Scan failed: %v", err)
			return nil, fmt.Errorf("database error scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating documents: %w", err)
	}

	return docs, nil
}
