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

// --- Compliance Gap Methods ---

const gapColumns = `id, audit_id, category, risk_level, liability_usd, explanation, compliant_rewrite, is_applied, applied_at, created_at`

// CreateGap records one identified compliance gap for an audit.
func (s *PostgresStore) CreateGap(ctx context.Context, arg store.CreateGapParams) (*models.ComplianceGap, error) {
	log.Printf("[PostgresStore] CreateGap called for audit %s, category %s", arg.AuditID, arg.Category)
	query := `
		INSERT INTO compliance_gaps (id, audit_id, category, risk_level, liability_usd, explanation, compliant_rewrite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + gapColumns

	gap, err := scanGap(s.db.QueryRow(ctx, query,
		arg.ID,
		arg.AuditID,
		arg.Category,
		arg.RiskLevel,
		arg.LiabilityUSD,
		arg.Explanation,
		arg.CompliantRewrite, // pgx handles *string to NULL automatically
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			log.Printf("WARN [PostgresStore] CreateGap: Foreign key violation for audit %s: %v", arg.AuditID, err)
			return nil, fmt.Errorf("invalid audit ID provided")
		}
		log.Printf("ERROR [PostgresStore] CreateGap: Failed insert for audit %s: %v", arg.AuditID, err)
		return nil, fmt.Errorf("database error creating gap: %w", err)
	}

	log.Printf("[PostgresStore] CreateGap: Successfully inserted gap ID %s", gap.ID)
	return gap, nil
}

// ListGapsByAudit retrieves all gaps of an audit ordered by severity
// (critical first), matching the report's display order.
func (s *PostgresStore) ListGapsByAudit(ctx context.Context, auditID uuid.UUID) ([]models.ComplianceGap, error) {
	log.Printf("[PostgresStore] ListGapsByAudit called for audit: %s", auditID)
	query := `
		SELECT ` + gapColumns + `
		FROM compliance_gaps
		WHERE audit_id = $1
		ORDER BY CASE risk_level
			WHEN 'critical' THEN 0
			WHEN 'high' THEN 1
			WHEN 'medium' THEN 2
			ELSE 3
		END, created_at`

	rows, err := s.db.Query(ctx, query, auditID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListGapsByAudit: Query failed for audit %s: %v", auditID, err)
		return nil, fmt.Errorf("database error listing gaps: %w", err)
	}
	defer rows.Close()

	gaps := []models.ComplianceGap{}
	for rows.Next() {
		gap, err := scanGap(rows)
		if err != nil {
			log.Printf("ERROR [PostgresStore] ListGapsByAudit: Scan failed: %v", err)
			return nil, fmt.Errorf("database error scanning gap: %w", err)
		}
		gaps = append(gaps, *gap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating gaps: %w", err)
	}

	return gaps, nil
}

// MarkGapApplied sets is_applied and the applied timestamp on one gap. The
// audit ID is part of the predicate so a gap cannot be flipped through the
// wrong audit's URL.
func (s *PostgresStore) MarkGapApplied(ctx context.Context, gapID, auditID uuid.UUID) (*models.ComplianceGap, error) {
	log.Printf("[PostgresStore] MarkGapApplied called for gap %s (audit %s)", gapID, auditID)
	query := `
		UPDATE compliance_gaps
		SET is_applied = TRUE, applied_at = NOW()
		WHERE id = $1 AND audit_id = $2
		RETURNING ` + gapColumns

	gap, err := scanGap(s.db.QueryRow(ctx, query, gapID, auditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] MarkGapApplied: Failed update for gap %s: %v", gapID, err)
		return nil, fmt.Errorf("database error marking gap applied: %w", err)
	}

	return gap, nil
}

// CountGapsByCategory aggregates gap counts per category across all audits,
// feeding the dashboard risk distribution.
func (s *PostgresStore) CountGapsByCategory(ctx context.Context) ([]store.CategoryCount, error) {
	log.Printf("[PostgresStore] CountGapsByCategory called")
	query := `
		SELECT category, COUNT(*)
		FROM compliance_gaps
		GROUP BY category
		ORDER BY COUNT(*) DESC, category`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CountGapsByCategory: Query failed: %v", err)
		return nil, fmt.Errorf("database error counting gaps: %w", err)
	}
	defer rows.Close()

	counts := []store.CategoryCount{}
	for rows.Next() {
		var c store.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("database error scanning gap count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating gap counts: %w", err)
	}

	return counts, nil
}

func scanGap(row pgx.Row) (*models.ComplianceGap, error) {
	gap := &models.ComplianceGap{}
	err := row.Scan(
		&gap.ID,
		&gap.AuditID,
		&gap.Category,
		&gap.RiskLevel,
		&gap.LiabilityUSD,
		&gap.Explanation,
		&gap.CompliantRewrite,
		&gap.IsApplied,
		&gap.AppliedAt,
		&gap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return gap, nil
}
