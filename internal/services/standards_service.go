package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"auditease-backend/internal/models"
	"auditease-backend/internal/standards"
	"auditease-backend/internal/store"
)

// StandardsService serves the built-in standards library and materializes
// presets into the document vault so they can back an audit.
type StandardsService struct {
	store store.Store
}

// NewStandardsService creates a new StandardsService.
func NewStandardsService(st store.Store) *StandardsService {
	return &StandardsService{store: st}
}

// ListStandards returns the preset library without text bodies.
func (s *StandardsService) ListStandards() *models.ListStandardsResponse {
	presets := standards.Presets()
	resp := &models.ListStandardsResponse{Standards: make([]models.StandardResponse, 0, len(presets))}
	for _, p := range presets {
		resp.Standards = append(resp.Standards, mapStandardToResponse(p, false))
	}
	return resp
}

// GetStandard returns one preset including its requirements text.
func (s *StandardsService) GetStandard(id string) (*models.StandardResponse, error) {
	preset, ok := standards.ByID(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	resp := mapStandardToResponse(preset, true)
	return &resp, nil
}

// ImportStandard creates a vault document from a preset's requirements text,
// returning the document that can serve as an audit's standard.
func (s *StandardsService) ImportStandard(ctx context.Context, id string) (*models.DocumentResponse, error) {
	preset, ok := standards.ByID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	doc, err := s.store.CreateDocument(ctx, store.CreateDocumentParams{
		ID:            uuid.New(),
		Name:          preset.Name,
		ExtractedText: preset.ExtractedText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import standard %s: %w", id, err)
	}
	return mapDocumentToResponse(doc, false), nil
}

func mapStandardToResponse(p standards.Standard, includeText bool) models.StandardResponse {
	resp := models.StandardResponse{
		ID:              p.ID,
		Name:            p.Name,
		ShortName:       p.ShortName,
		Description:     p.Description,
		Category:        p.Category,
		KeyRequirements: p.KeyRequirements,
	}
	if includeText {
		resp.ExtractedText = p.ExtractedText
	}
	return resp
}
