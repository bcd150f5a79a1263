package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"auditease-backend/internal/models"
	"auditease-backend/internal/notify"
	"auditease-backend/internal/poller"
	"auditease-backend/internal/store"
)

// recentAuditLimit is how many audits feed the dashboard aggregates.
const recentAuditLimit = 5

var validRiskLevels = map[string]bool{
	"critical": true,
	"high":     true,
	"medium":   true,
	"low":      true,
}

// AuditService handles audit lifecycle, compliance gaps and dashboard stats.
type AuditService struct {
	store         store.Store
	notifier      notify.Notifier // optional, may be nil
	watchInterval time.Duration
}

// NewAuditService creates a new AuditService. notifier may be nil to disable
// completion notifications.
func NewAuditService(st store.Store, notifier notify.Notifier, watchInterval time.Duration) *AuditService {
	return &AuditService{
		store:         st,
		notifier:      notifier,
		watchInterval: watchInterval,
	}
}

// CreateAudit starts a new audit in the pending status.
func (s *AuditService) CreateAudit(ctx context.Context, req models.CreateAuditRequest) (*models.AuditResponse, error) {
	if req.SubjectDocumentID == uuid.Nil {
		return nil, fmt.Errorf("subject_document_id is required")
	}
	if req.StandardDocumentID == uuid.Nil {
		return nil, fmt.Errorf("standard_document_id is required")
	}

	created, err := s.store.CreateAudit(ctx, store.CreateAuditParams{
		ID:                 uuid.New(),
		SubjectDocumentID:  req.SubjectDocumentID,
		StandardDocumentID: req.StandardDocumentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create audit in store: %w", err)
	}

	// Fetch back with document names joined.
	audit, err := s.store.GetAuditByID(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created audit: %w", err)
	}
	return mapAuditToResponse(audit), nil
}

// GetAudit retrieves one audit by ID.
func (s *AuditService) GetAudit(ctx context.Context, auditID uuid.UUID) (*models.AuditResponse, error) {
	audit, err := s.store.GetAuditByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get audit from store: %w", err)
	}
	return mapAuditToResponse(audit), nil
}

// ListAudits retrieves the most recent audits.
func (s *AuditService) ListAudits(ctx context.Context, limit int) (*models.ListAuditsResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	audits, err := s.store.ListAudits(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits from store: %w", err)
	}

	resp := &models.ListAuditsResponse{Audits: make([]models.AuditResponse, 0, len(audits))}
	for i := range audits {
		resp.Audits = append(resp.Audits, *mapAuditToResponse(&audits[i]))
	}
	return resp, nil
}

// UpdateStatus records a status transition reported by the analysis pipeline.
// Reaching a terminal status triggers the completion notifier, best-effort.
func (s *AuditService) UpdateStatus(ctx context.Context, auditID uuid.UUID, req models.UpdateAuditStatusRequest) (*models.AuditResponse, error) {
	status, err := models.ParseAuditStatus(req.Status)
	if err != nil {
		return nil, err
	}

	audit, err := s.store.UpdateAuditStatus(ctx, store.UpdateAuditStatusParams{
		ID:                auditID,
		Status:            status,
		HealthScore:       req.HealthScore,
		TotalLiabilityUSD: req.TotalLiabilityUSD,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update audit status: %w", err)
	}

	if status.IsTerminal() && s.notifier != nil {
		s.notifier.AuditFinished(ctx, audit)
	}

	return mapAuditToResponse(audit), nil
}

// WatchAudit polls the audit at the configured interval and calls emit for
// the initial state and every status change. It returns when the audit
// reaches a terminal status, emit fails, or ctx is cancelled, so a closed
// client connection stops the loop instead of leaking it.
func (s *AuditService) WatchAudit(ctx context.Context, auditID uuid.UUID, emit func(*models.AuditResponse) error) error {
	var last models.AuditStatus
	seen := false

	p := poller.New(s.watchInterval, func(ctx context.Context) (bool, error) {
		audit, err := s.store.GetAuditByID(ctx, auditID)
		if err != nil {
			return false, err
		}
		if !seen || audit.Status != last {
			seen = true
			last = audit.Status
			if err := emit(mapAuditToResponse(audit)); err != nil {
				return false, err
			}
		}
		return audit.Status.IsTerminal(), nil
	})

	return p.Run(ctx)
}

// CreateGap records one identified compliance gap for an audit.
func (s *AuditService) CreateGap(ctx context.Context, auditID uuid.UUID, req models.CreateGapRequest) (*models.GapResponse, error) {
	if req.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if !validRiskLevels[req.RiskLevel] {
		return nil, fmt.Errorf("invalid risk_level %q", req.RiskLevel)
	}

	gap, err := s.store.CreateGap(ctx, store.CreateGapParams{
		ID:               uuid.New(),
		AuditID:          auditID,
		Category:         req.Category,
		RiskLevel:        req.RiskLevel,
		LiabilityUSD:     req.LiabilityUSD,
		Explanation:      req.Explanation,
		CompliantRewrite: req.CompliantRewrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gap in store: %w", err)
	}
	return mapGapToResponse(gap), nil
}

// ListGaps retrieves the gaps of an audit ordered by severity.
func (s *AuditService) ListGaps(ctx context.Context, auditID uuid.UUID) (*models.ListGapsResponse, error) {
	gaps, err := s.store.ListGapsByAudit(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps from store: %w", err)
	}

	resp := &models.ListGapsResponse{Gaps: make([]models.GapResponse, 0, len(gaps))}
	for i := range gaps {
		resp.Gaps = append(resp.Gaps, *mapGapToResponse(&gaps[i]))
	}
	return resp, nil
}

// MarkGapApplied flags one gap's remediation as applied.
func (s *AuditService) MarkGapApplied(ctx context.Context, auditID, gapID uuid.UUID) (*models.GapResponse, error) {
	gap, err := s.store.MarkGapApplied(ctx, gapID, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark gap applied: %w", err)
	}
	return mapGapToResponse(gap), nil
}

// DashboardStats aggregates the most recent audits: rounded mean health score
// over completed audits, summed liability, and the percent share of gaps per
// category.
func (s *AuditService) DashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error) {
	audits, err := s.store.ListAudits(ctx, recentAuditLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits for stats: %w", err)
	}

	stats := &models.DashboardStatsResponse{AuditCount: len(audits)}

	var completed int
	var healthSum, liabilitySum float64
	for i := range audits {
		if audits[i].Status != models.AuditStatusCompleted {
			continue
		}
		completed++
		if audits[i].HealthScore != nil {
			healthSum += float64(*audits[i].HealthScore)
		}
		if audits[i].TotalLiabilityUSD != nil {
			liabilitySum += *audits[i].TotalLiabilityUSD
		}
	}
	if completed > 0 {
		stats.HealthScore = int(math.Round(healthSum / float64(completed)))
		stats.TotalLiabilityUSD = liabilitySum
	}

	counts, err := s.store.CountGapsByCategory(ctx)
	if err != nil {
		// Stats still render without the distribution; log and degrade.
		log.Printf("WARN [AuditService] DashboardStats: gap category aggregate failed: %v", err)
		return stats, nil
	}
	stats.RiskCategories = categoryShares(counts)

	return stats, nil
}

// categoryShares converts raw category counts to integer percent shares.
func categoryShares(counts []store.CategoryCount) []models.RiskCategoryShare {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return nil
	}

	shares := make([]models.RiskCategoryShare, 0, len(counts))
	for _, c := range counts {
		shares = append(shares, models.RiskCategoryShare{
			Name:  c.Category,
			Value: int(math.Round(float64(c.Count) / float64(total) * 100)),
		})
	}
	return shares
}

func mapAuditToResponse(audit *models.Audit) *models.AuditResponse {
	return &models.AuditResponse{
		ID:                 audit.ID,
		SubjectDocumentID:  audit.SubjectDocumentID,
		StandardDocumentID: audit.StandardDocumentID,
		SubjectName:        audit.SubjectName,
		StandardName:       audit.StandardName,
		Status:             audit.Status,
		HealthScore:        audit.HealthScore,
		TotalLiabilityUSD:  audit.TotalLiabilityUSD,
		CreatedAt:          audit.CreatedAt,
		UpdatedAt:          audit.UpdatedAt,
	}
}

func mapGapToResponse(gap *models.ComplianceGap) *models.GapResponse {
	return &models.GapResponse{
		ID:               gap.ID,
		AuditID:          gap.AuditID,
		Category:         gap.Category,
		RiskLevel:        gap.RiskLevel,
		LiabilityUSD:     gap.LiabilityUSD,
		Explanation:      gap.Explanation,
		CompliantRewrite: gap.CompliantRewrite,
		IsApplied:        gap.IsApplied,
		AppliedAt:        gap.AppliedAt,
		CreatedAt:        gap.CreatedAt,
	}
}
