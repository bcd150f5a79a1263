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

// --- Audit Methods ---

// CreateAudit inserts a new audit in the pending status.
func (s *PostgresStore) CreateAudit(ctx context.Context, arg store.CreateAuditParams) (*models.Audit, error) {
	log.Printf("[PostgresStore] CreateAudit called for subject %s vs standard %s", arg.SubjectDocumentID, arg.StandardDocumentID)
	query := `
		INSERT INTO audits (id, subject_document_id, standard_document_id, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, subject_document_id, standard_document_id, status, health_score, total_liability_usd, created_at, updated_at`

	audit, err := scanAudit(s.db.QueryRow(ctx, query, arg.ID, arg.SubjectDocumentID, arg.StandardDocumentID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			log.Printf("WARN [PostgresStore] CreateAudit: Foreign key violation: %v", err)
			return nil, fmt.Errorf("invalid document ID provided")
		}
		log.Printf("ERROR [PostgresStore] CreateAudit: Failed insert: %v", err)
		return nil, fmt.Errorf("database error creating audit: %w", err)
	}

	log.Printf("[PostgresStore] CreateAudit: Successfully inserted audit ID %s", audit.ID)
	return audit, nil
}

// GetAuditByID retrieves one audit with subject/standard names and the
// subject's extracted text joined in, for the audit detail and chat views.
func (s *PostgresStore) GetAuditByID(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	log.Printf("[PostgresStore] GetAuditByID called for ID: %s", id)
	query := `
		SELECT a.id, a.subject_document_id, a.standard_document_id, a.status,
		       a.health_score, a.total_liability_usd, a.created_at, a.updated_at,
		       subject.name, standard.name, subject.extracted_text
		FROM audits a
		JOIN documents subject ON subject.id = a.subject_document_id
		JOIN documents standard ON standard.id = a.standard_document_id
		WHERE a.id = $1`

	audit := &models.Audit{}
	var rawStatus string
	err := s.db.QueryRow(ctx, query, id).Scan(
		&audit.ID,
		&audit.SubjectDocumentID,
		&audit.StandardDocumentID,
		&rawStatus,
		&audit.HealthScore,
		&audit.TotalLiabilityUSD,
		&audit.CreatedAt,
		&audit.UpdatedAt,
		&audit.SubjectName,
		&audit.StandardName,
		&audit.SubjectText,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetAuditByID: Failed query/scan for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching audit: %w", err)
	}

	audit.Status, err = models.ParseAuditStatus(rawStatus)
	if err != nil {
		log.Printf("ERROR [PostgresStore] GetAuditByID: Bad status for ID %s: %v", id, err)
		return nil, fmt.Errorf("database returned invalid audit status: %w", err)
	}

	return audit, nil
}

// ListAudits retrieves the most recent audits with document names joined,
// but without extracted text bodies.
func (s *PostgresStore) ListAudits(ctx context.Context, limit int) ([]models.Audit, error) {
	log.Printf("[PostgresStore] ListAudits called (limit=%d)", limit)
	query := `
		SELECT a.id, a.subject_document_id, a.standard_document_id, a.status,
		       a.health_score, a.total_liability_usd, a.created_at, a.updated_at,
		       subject.name, standard.name
		FROM audits a
		JOIN documents subject ON subject.id = a.subject_document_id
		JOIN documents standard ON standard.id = a.standard_document_id
		ORDER BY a.created_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListAudits: Query failed: %v", err)
		return nil, fmt.Errorf("database error listing audits: %w", err)
	}
	defer rows.Close()

	audits := []models.Audit{}
	for rows.Next() {
		var audit models.Audit
		var rawStatus string
		err := rows.Scan(
			&audit.ID,
			&audit.SubjectDocumentID,
			&audit.StandardDocumentID,
			&rawStatus,
			&audit.HealthScore,
			&audit.TotalLiabilityUSD,
			&audit.CreatedAt,
			&audit.UpdatedAt,
			&audit.SubjectName,
			&audit.StandardName,
		)
		if err != nil {
			log.Printf("ERROR [PostgresStore] ListAudits: Scan failed: %v", err)
			return nil, fmt.Errorf("database error scanning audit: %w", err)
		}
		audit.Status, err = models.ParseAuditStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("database returned invalid audit status: %w", err)
		}
		audits = append(audits, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating audits: %w", err)
	}

	return audits, nil
}

// UpdateAuditStatus records a status transition reported by the analysis
// pipeline and returns the updated audit with document names joined.
func (s *PostgresStore) UpdateAuditStatus(ctx context.Context, arg store.UpdateAuditStatusParams) (*models.Audit, error) {
	log.Printf("[PostgresStore] UpdateAuditStatus called for ID %s -> %s", arg.ID, arg.Status)
	query := `
		UPDATE audits
		SET status = $2,
		    health_score = COALESCE($3, health_score),
		    total_liability_usd = COALESCE($4, total_liability_usd),
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, arg.ID, string(arg.Status), arg.HealthScore, arg.TotalLiabilityUSD)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpdateAuditStatus: Failed update for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error updating audit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetAuditByID(ctx, arg.ID)
}

// scanAudit scans the bare audits columns (no joins) from a single row.
func scanAudit(row pgx.Row) (*models.Audit, error) {
	audit := &models.Audit{}
	var rawStatus string
	err := row.Scan(
		&audit.ID,
		&audit.SubjectDocumentID,
		&audit.StandardDocumentID,
		&rawStatus,
		&audit.HealthScore,
		&audit.TotalLiabilityUSD,
		&audit.CreatedAt,
		&audit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	audit.Status, err = models.ParseAuditStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return audit, nil
}
