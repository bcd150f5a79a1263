package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"auditease-backend/internal/models"
	"auditease-backend/internal/store"
)

// fakeStore is an in-memory store.Store used across the service tests.
type fakeStore struct {
	mu        sync.Mutex
	documents []models.Document
	audits    []models.Audit
	gaps      []models.ComplianceGap
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateDocument(ctx context.Context, arg store.CreateDocumentParams) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	doc := models.Document{
		ID:            arg.ID,
		Name:          arg.Name,
		ExtractedText: arg.ExtractedText,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.documents = append(f.documents, doc)
	out := doc
	return &out, nil
}

func (f *fakeStore) GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.documents {
		if f.documents[i].ID == id {
			out := f.documents[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Document, len(f.documents))
	copy(out, f.documents)
	// Newest first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []models.Document{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CreateAudit(ctx context.Context, arg store.CreateAuditParams) (*models.Audit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	audit := models.Audit{
		ID:                 arg.ID,
		SubjectDocumentID:  arg.SubjectDocumentID,
		StandardDocumentID: arg.StandardDocumentID,
		Status:             models.AuditStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	f.audits = append(f.audits, audit)
	out := audit
	return &out, nil
}

func (f *fakeStore) GetAuditByID(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.audits {
		if f.audits[i].ID == id {
			out := f.audits[i]
			f.joinLocked(&out, true)
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListAudits(ctx context.Context, limit int) ([]models.Audit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Audit, len(f.audits))
	copy(out, f.audits)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit < len(out) {
		out = out[:limit]
	}
	for i := range out {
		f.joinLocked(&out[i], false)
	}
	return out, nil
}

func (f *fakeStore) UpdateAuditStatus(ctx context.Context, arg store.UpdateAuditStatusParams) (*models.Audit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.audits {
		if f.audits[i].ID == arg.ID {
			f.audits[i].Status = arg.Status
			if arg.HealthScore != nil {
				f.audits[i].HealthScore = arg.HealthScore
			}
			if arg.TotalLiabilityUSD != nil {
				f.audits[i].TotalLiabilityUSD = arg.TotalLiabilityUSD
			}
			f.audits[i].UpdatedAt = time.Now()
			out := f.audits[i]
			f.joinLocked(&out, true)
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

// setStatus mutates an audit directly, simulating the external pipeline
// between watch ticks.
func (f *fakeStore) setStatus(id uuid.UUID, status models.AuditStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.audits {
		if f.audits[i].ID == id {
			f.audits[i].Status = status
		}
	}
}

func (f *fakeStore) CreateGap(ctx context.Context, arg store.CreateGapParams) (*models.ComplianceGap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gap := models.ComplianceGap{
		ID:               arg.ID,
		AuditID:          arg.AuditID,
		Category:         arg.Category,
		RiskLevel:        arg.RiskLevel,
		LiabilityUSD:     arg.LiabilityUSD,
		Explanation:      arg.Explanation,
		CompliantRewrite: arg.CompliantRewrite,
		CreatedAt:        time.Now(),
	}
	f.gaps = append(f.gaps, gap)
	out := gap
	return &out, nil
}

var riskOrder = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

func (f *fakeStore) ListGapsByAudit(ctx context.Context, auditID uuid.UUID) ([]models.ComplianceGap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ComplianceGap{}
	for i := range f.gaps {
		if f.gaps[i].AuditID == auditID {
			out = append(out, f.gaps[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return riskOrder[out[i].RiskLevel] < riskOrder[out[j].RiskLevel] })
	return out, nil
}

func (f *fakeStore) MarkGapApplied(ctx context.Context, gapID, auditID uuid.UUID) (*models.ComplianceGap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.gaps {
		if f.gaps[i].ID == gapID && f.gaps[i].AuditID == auditID {
			now := time.Now()
			f.gaps[i].IsApplied = true
			f.gaps[i].AppliedAt = &now
			out := f.gaps[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CountGapsByCategory(ctx context.Context) ([]store.CategoryCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byCat := map[string]int{}
	for i := range f.gaps {
		byCat[f.gaps[i].Category]++
	}
	out := []store.CategoryCount{}
	for cat, n := range byCat {
		out = append(out, store.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// joinLocked fills the joined document fields. Caller holds f.mu.
func (f *fakeStore) joinLocked(audit *models.Audit, includeText bool) {
	for i := range f.documents {
		if f.documents[i].ID == audit.SubjectDocumentID {
			audit.SubjectName = f.documents[i].Name
			if includeText {
				audit.SubjectText = f.documents[i].ExtractedText
			}
		}
		if f.documents[i].ID == audit.StandardDocumentID {
			audit.StandardName = f.documents[i].Name
		}
	}
}

// seedAuditFixture creates a subject + standard document pair and an audit
// over them, returning the audit ID.
func seedAuditFixture(f *fakeStore, subjectName, subjectText string) uuid.UUID {
	subject, _ := f.CreateDocument(context.Background(), store.CreateDocumentParams{
		ID:            uuid.New(),
		Name:          subjectName,
		ExtractedText: subjectText,
	})
	standard, _ := f.CreateDocument(context.Background(), store.CreateDocumentParams{
		ID:            uuid.New(),
		Name:          "General Data Protection Regulation",
		ExtractedText: "ARTICLE 5 - PRINCIPLES RELATING TO PROCESSING OF PERSONAL DATA",
	})
	audit, _ := f.CreateAudit(context.Background(), store.CreateAuditParams{
		ID:                 uuid.New(),
		SubjectDocumentID:  subject.ID,
		StandardDocumentID: standard.ID,
	})
	return audit.ID
}
