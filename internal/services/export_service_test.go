package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditease-backend/internal/models"
	"auditease-backend/internal/store"
)

func TestBuildReportCSV(t *testing.T) {
	st := newFakeStore()
	auditSvc := NewAuditService(st, nil, time.Millisecond)
	exportSvc := NewExportService(st)
	auditID := seedAuditFixture(st, "Master Services Agreement", "text")

	_, err := auditSvc.CreateGap(context.Background(), auditID, models.CreateGapRequest{
		Category:         "Data Privacy",
		RiskLevel:        "critical",
		LiabilityUSD:     250000,
		Explanation:      "Personal data is shared with subprocessors without consent.",
		CompliantRewrite: strPtr("Subprocessor sharing requires prior written consent."),
	})
	require.NoError(t, err)
	_, err = auditSvc.CreateGap(context.Background(), auditID, models.CreateGapRequest{
		Category:     "Termination",
		RiskLevel:    "low",
		LiabilityUSD: 1500.5,
		Explanation:  "No cure period before termination for breach.",
	})
	require.NoError(t, err)

	data, filename, err := exportSvc.BuildReportCSV(context.Background(), auditID)
	require.NoError(t, err)
	assert.Equal(t, "audit-report-master-services-agreement.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Category", "Risk Level", "Liability (USD)", "Violation", "Recommendation"}, records[0])
	assert.Equal(t, []string{
		"Data Privacy", "CRITICAL", "250000.00",
		"Personal data is shared with subprocessors without consent.",
		"Subprocessor sharing requires prior written consent.",
	}, records[1])
	assert.Equal(t, []string{
		"Termination", "LOW", "1500.50",
		"No cure period before termination for breach.",
		"N/A",
	}, records[2], "a gap without a rewrite exports N/A")
}

func TestBuildReportCSVNoGaps(t *testing.T) {
	st := newFakeStore()
	exportSvc := NewExportService(st)
	auditID := seedAuditFixture(st, "NDA", "text")

	data, filename, err := exportSvc.BuildReportCSV(context.Background(), auditID)
	require.NoError(t, err)
	assert.Equal(t, "audit-report-nda.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only when the audit has no gaps")
}

func TestBuildReportCSVUnknownAudit(t *testing.T) {
	exportSvc := NewExportService(newFakeStore())

	_, _, err := exportSvc.BuildReportCSV(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
