package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"auditease-backend/internal/models"
	"auditease-backend/internal/services"
	"auditease-backend/internal/store"
)

// stubStore overrides only the store calls a test needs; anything else hits
// the nil embedded interface and fails loudly.
type stubStore struct {
	store.Store
	createAudit func(ctx context.Context, arg store.CreateAuditParams) (*models.Audit, error)
}

func (s *stubStore) CreateAudit(ctx context.Context, arg store.CreateAuditParams) (*models.Audit, error) {
	return s.createAudit(ctx, arg)
}

func newAuditHandlers(st store.Store) *AuditHandlers {
	svc := services.NewAuditService(st, nil, time.Second)
	return NewAuditHandlers(svc, services.NewExportService(st))
}

func TestHandleCreateAuditClientErrorsReturn400(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		store *stubStore
	}{
		{
			name:  "malformed body",
			body:  `{not json`,
			store: &stubStore{},
		},
		{
			name:  "missing standard document",
			body:  `{"subject_document_id":"7b0d1ac0-4f70-4a84-95a3-4c5be2c31d07"}`,
			store: &stubStore{},
		},
		{
			name: "unknown document IDs",
			body: `{"subject_document_id":"7b0d1ac0-4f70-4a84-95a3-4c5be2c31d07","standard_document_id":"3f31f5e2-6f38-4b57-9a26-0c1f6f3f7f11"}`,
			store: &stubStore{
				createAudit: func(ctx context.Context, arg store.CreateAuditParams) (*models.Audit, error) {
					// What the store returns on a foreign key rejection.
					return nil, fmt.Errorf("invalid document ID provided")
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newAuditHandlers(tc.store)

			req := httptest.NewRequest(http.MethodPost, "/v1/audits", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.HandleCreateAudit(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
