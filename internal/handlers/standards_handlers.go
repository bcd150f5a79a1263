package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"auditease-backend/internal/services"
	"auditease-backend/internal/store"
	"auditease-backend/pkg/httputil"
)

// StandardsHandlers serves the built-in standards library.
type StandardsHandlers struct {
	standardsService *services.StandardsService
}

// NewStandardsHandlers creates a new StandardsHandlers instance.
func NewStandardsHandlers(standardsService *services.StandardsService) *StandardsHandlers {
	return &StandardsHandlers{standardsService: standardsService}
}

// HandleListStandards returns the preset library without text bodies.
func (h *StandardsHandlers) HandleListStandards(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.standardsService.ListStandards())
}

// HandleGetStandard returns one preset including its requirements text.
func (h *StandardsHandlers) HandleGetStandard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "standardID")

	standard, err := h.standardsService.GetStandard(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Standard not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get standard: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, standard)
}

// HandleImportStandard materializes a preset as a vault document.
func (h *StandardsHandlers) HandleImportStandard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "standardID")

	doc, err := h.standardsService.ImportStandard(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Standard not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to import standard: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}
