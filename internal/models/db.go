package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded legal document in the database.
// ExtractedText holds the full text pulled out of the original file by the
// ingestion pipeline; the chat layer only ever reads a bounded prefix of it.
type Document struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	ExtractedText string    `db:"extracted_text"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Audit represents one compliance audit of a subject document against a
// standard document. Status transitions are owned by the external analysis
// pipeline; this service only records and renders them.
type Audit struct {
	ID                 uuid.UUID   `db:"id"`
	SubjectDocumentID  uuid.UUID   `db:"subject_document_id"`
	StandardDocumentID uuid.UUID   `db:"standard_document_id"`
	Status             AuditStatus `db:"status"`
	HealthScore        *int        `db:"health_score"`        // 0-100, nil until completed
	TotalLiabilityUSD  *float64    `db:"total_liability_usd"` // nil until completed
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`

	// Joined fields, populated by queries that join the documents table.
	SubjectName  string `db:"subject_name"`
	StandardName string `db:"standard_name"`
	// SubjectText is only populated by GetAuditByID; list queries skip it to
	// avoid dragging full document bodies through every dashboard load.
	SubjectText string `db:"subject_text"`
}

// ComplianceGap represents one identified compliance deficiency belonging to
// an audit: category, risk level, liability estimate and remediation text.
type ComplianceGap struct {
	ID               uuid.UUID  `db:"id"`
	AuditID          uuid.UUID  `db:"audit_id"`
	Category         string     `db:"category"`
	RiskLevel        string     `db:"risk_level"` // critical | high | medium | low
	LiabilityUSD     float64    `db:"liability_usd"`
	Explanation      string     `db:"explanation"`
	CompliantRewrite *string    `db:"compliant_rewrite"` // nullable remediation text
	IsApplied        bool       `db:"is_applied"`
	AppliedAt        *time.Time `db:"applied_at"`
	CreatedAt        time.Time  `db:"created_at"`
}
