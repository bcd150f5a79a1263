package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// CreateDocumentRequest defines the body for registering an extracted document.
type CreateDocumentRequest struct {
	Name          string `json:"name"`
	ExtractedText string `json:"extracted_text"`
}

// CreateAuditRequest defines the body for starting a new audit.
type CreateAuditRequest struct {
	SubjectDocumentID  uuid.UUID `json:"subject_document_id"`
	StandardDocumentID uuid.UUID `json:"standard_document_id"`
}

// UpdateAuditStatusRequest is sent by the analysis pipeline to record a status
// transition. Score and liability accompany the terminal "completed" status.
type UpdateAuditStatusRequest struct {
	Status            string   `json:"status"`
	HealthScore       *int     `json:"health_score,omitempty"`
	TotalLiabilityUSD *float64 `json:"total_liability_usd,omitempty"`
}

// CreateGapRequest is sent by the analysis pipeline for each identified gap.
type CreateGapRequest struct {
	Category         string  `json:"category"`
	RiskLevel        string  `json:"risk_level"`
	LiabilityUSD     float64 `json:"liability_usd"`
	Explanation      string  `json:"explanation"`
	CompliantRewrite *string `json:"compliant_rewrite,omitempty"`
}

// SendMessageRequest defines the body for submitting a chat question.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// --- Response Structs ---

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DocumentResponse defines the document data returned by the API. The full
// extracted text is only included on single-document fetches.
type DocumentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuditResponse defines the audit data returned by the API.
type AuditResponse struct {
	ID                 uuid.UUID   `json:"id"`
	SubjectDocumentID  uuid.UUID   `json:"subject_document_id"`
	StandardDocumentID uuid.UUID   `json:"standard_document_id"`
	SubjectName        string      `json:"subject_name"`
	StandardName       string      `json:"standard_name"`
	Status             AuditStatus `json:"status"`
	HealthScore        *int        `json:"health_score,omitempty"`
	TotalLiabilityUSD  *float64    `json:"total_liability_usd,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// ListAuditsResponse wraps a page of audits.
type ListAuditsResponse struct {
	Audits []AuditResponse `json:"audits"`
}

// GapResponse defines the compliance gap data returned by the API.
type GapResponse struct {
	ID               uuid.UUID  `json:"id"`
	AuditID          uuid.UUID  `json:"audit_id"`
	Category         string     `json:"category"`
	RiskLevel        string     `json:"risk_level"`
	LiabilityUSD     float64    `json:"liability_usd"`
	Explanation      string     `json:"explanation"`
	CompliantRewrite *string    `json:"compliant_rewrite,omitempty"`
	IsApplied        bool       `json:"is_applied"`
	AppliedAt        *time.Time `json:"applied_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ListGapsResponse wraps the gaps of one audit.
type ListGapsResponse struct {
	Gaps []GapResponse `json:"gaps"`
}

// TurnResponse defines one conversation turn as returned by the API. HTML is
// the display-ready form produced by the render formatter.
type TurnResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse defines the full turn sequence of a chat session.
// Notice carries a transient user-facing message when a submission degraded
// (e.g. the inference call failed and an apology turn was substituted).
type ConversationResponse struct {
	AuditID uuid.UUID      `json:"audit_id"`
	Turns   []TurnResponse `json:"turns"`
	Notice  string         `json:"notice,omitempty"`
}

// RiskCategoryShare is one slice of the dashboard risk distribution.
type RiskCategoryShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // percent share, 0-100
}

// DashboardStatsResponse aggregates recent audits for the dashboard.
type DashboardStatsResponse struct {
	HealthScore       int                 `json:"health_score"` // rounded mean over completed audits
	TotalLiabilityUSD float64             `json:"total_liability_usd"`
	AuditCount        int                 `json:"audit_count"`
	RiskCategories    []RiskCategoryShare `json:"risk_categories"`
}

// StandardResponse defines a preset regulatory standard from the built-in
// library. ExtractedText is only included on single-standard fetches.
type StandardResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ShortName       string   `json:"short_name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	KeyRequirements []string `json:"key_requirements"`
	ExtractedText   string   `json:"extracted_text,omitempty"`
}

// ListStandardsResponse wraps the preset standards library.
type ListStandardsResponse struct {
	Standards []StandardResponse `json:"standards"`
}
