package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"auditease-backend/internal/store"
)

// ExportService builds the downloadable audit report artifact: a tabular gap
// listing with category, risk, liability, explanation and recommendation
// columns. Formatting only; every value comes straight from the store.
type ExportService struct {
	store store.Store
}

// NewExportService creates a new ExportService.
func NewExportService(st store.Store) *ExportService {
	return &ExportService{store: st}
}

// BuildReportCSV renders the report for one audit and returns the CSV bytes
// plus a download filename derived from the subject document's name.
func (s *ExportService) BuildReportCSV(ctx context.Context, auditID uuid.UUID) ([]byte, string, error) {
	audit, err := s.store.GetAuditByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to get audit for report: %w", err)
	}

	gaps, err := s.store.ListGapsByAudit(ctx, auditID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list gaps for report: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Category", "Risk Level", "Liability (USD)", "Violation", "Recommendation"}
	if err := w.Write(header); err != nil {
		return nil, "", fmt.Errorf("failed to write report header: %w", err)
	}

	for _, gap := range gaps {
		rewrite := "N/A"
		if gap.CompliantRewrite != nil && *gap.CompliantRewrite != "" {
			rewrite = *gap.CompliantRewrite
		}
		row := []string{
			gap.Category,
			strings.ToUpper(gap.RiskLevel),
			fmt.Sprintf("%.2f", gap.LiabilityUSD),
			gap.Explanation,
			rewrite,
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush report: %w", err)
	}

	return buf.Bytes(), reportFilename(audit.SubjectName), nil
}

// reportFilename slugs the subject name into a safe download filename.
func reportFilename(subjectName string) string {
	slug := strings.ToLower(strings.TrimSpace(subjectName))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "document"
	}
	return fmt.Sprintf("audit-report-%s.csv", slug)
}
