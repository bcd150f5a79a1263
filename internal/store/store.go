package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"auditease-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateDocumentParams contains parameters for registering a document.
type CreateDocumentParams struct {
	ID            uuid.UUID
	Name          string
	ExtractedText string
}

// CreateAuditParams contains parameters for creating an audit. New audits
// always start in the pending status.
type CreateAuditParams struct {
	ID                 uuid.UUID
	SubjectDocumentID  uuid.UUID
	StandardDocumentID uuid.UUID
}

// UpdateAuditStatusParams records a status transition reported by the
// analysis pipeline. Score and liability are only set alongside "completed".
type UpdateAuditStatusParams struct {
	ID                uuid.UUID
	Status            models.AuditStatus
	HealthScore       *int
	TotalLiabilityUSD *float64
}

// CreateGapParams contains parameters for recording one compliance gap.
type CreateGapParams struct {
	ID               uuid.UUID
	AuditID          uuid.UUID
	Category         string
	RiskLevel        string
	LiabilityUSD     float64
	Explanation      string
	CompliantRewrite *string
}

// CategoryCount is one row of the gap-category aggregate.
type CategoryCount struct {
	Category string
	Count    int
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// Document operations
	CreateDocument(ctx context.Context, arg CreateDocumentParams) (*models.Document, error)
	GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error)

	// Audit operations
	CreateAudit(ctx context.Context, arg CreateAuditParams) (*models.Audit, error)
	// GetAuditByID joins subject/standard names and the subject's extracted text.
	GetAuditByID(ctx context.Context, id uuid.UUID) (*models.Audit, error)
	ListAudits(ctx context.Context, limit int) ([]models.Audit, error)
	UpdateAuditStatus(ctx context.Context, arg UpdateAuditStatusParams) (*models.Audit, error)

	// Compliance gap operations
	CreateGap(ctx context.Context, arg CreateGapParams) (*models.ComplianceGap, error)
	ListGapsByAudit(ctx context.Context, auditID uuid.UUID) ([]models.ComplianceGap, error)
	MarkGapApplied(ctx context.Context, gapID, auditID uuid.UUID) (*models.ComplianceGap, error)
	CountGapsByCategory(ctx context.Context) ([]CategoryCount, error)
}
