package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"auditease-backend/internal/models"
	"auditease-backend/internal/services"
	"auditease-backend/internal/store"
	"auditease-backend/pkg/httputil"
)

// DocumentHandlers handles HTTP requests for the document vault.
type DocumentHandlers struct {
	documentService *services.DocumentService
}

// NewDocumentHandlers creates a new DocumentHandlers instance.
func NewDocumentHandlers(documentService *services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

// HandleCreateDocument registers a document with its extracted text.
func (h *DocumentHandlers) HandleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.documentService.CreateDocument(r.Context(), req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to create document: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// HandleGetDocument returns one document including its extracted text.
func (h *DocumentHandlers) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseUUIDParam(w, r, "documentID")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Document not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get document: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// HandleListDocuments returns document metadata, newest first.
func (h *DocumentHandlers) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	docs, err := h.documentService.ListDocuments(r.Context(), limit, offset)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list documents: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}
