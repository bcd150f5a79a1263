package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"auditease-backend/internal/models"
	"auditease-backend/internal/store"
)

// DocumentService handles the document vault.
type DocumentService struct {
	store store.Store
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(st store.Store) *DocumentService {
	return &DocumentService{store: st}
}

// CreateDocument registers a document and its extracted text.
func (s *DocumentService) CreateDocument(ctx context.Context, req models.CreateDocumentRequest) (*models.DocumentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	doc, err := s.store.CreateDocument(ctx, store.CreateDocumentParams{
		ID:            uuid.New(),
		Name:          name,
		ExtractedText: req.ExtractedText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document in store: %w", err)
	}
	return mapDocumentToResponse(doc, true), nil
}

// GetDocument retrieves one document with its extracted text.
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*models.DocumentResponse, error) {
	doc, err := s.store.GetDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get document from store: %w", err)
	}
	return mapDocumentToResponse(doc, true), nil
}

// ListDocuments retrieves document metadata, newest first.
func (s *DocumentService) ListDocuments(ctx context.Context, limit, offset int) ([]models.DocumentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := s.store.ListDocuments(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents from store: %w", err)
	}

	out := make([]models.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, *mapDocumentToResponse(&docs[i], false))
	}
	return out, nil
}

func mapDocumentToResponse(doc *models.Document, includeText bool) *models.DocumentResponse {
	resp := &models.DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if includeText {
		resp.ExtractedText = doc.ExtractedText
	}
	return resp
}
