package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"auditease-backend/internal/models"
	"auditease-backend/internal/services"
	"auditease-backend/internal/store"
	"auditease-backend/pkg/httputil"
)

// AuditHandlers handles HTTP requests for audits, gaps, the status watch
// stream and report export.
type AuditHandlers struct {
	auditService  *services.AuditService
	exportService *services.ExportService
}

// NewAuditHandlers creates a new AuditHandlers instance.
func NewAuditHandlers(auditService *services.AuditService, exportService *services.ExportService) *AuditHandlers {
	return &AuditHandlers{
		auditService:  auditService,
		exportService: exportService,
	}
}

// HandleCreateAudit starts a new audit in the pending status.
func (h *AuditHandlers) HandleCreateAudit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	audit, err := h.auditService.CreateAudit(r.Context(), req)
	if err != nil {
		// Missing IDs and FK rejections are caller mistakes, not server faults.
		httputil.RespondError(w, http.StatusBadRequest, "Failed to create audit: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, audit)
}

// HandleGetAudit returns one audit by ID.
func (h *AuditHandlers) HandleGetAudit(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	audit, err := h.auditService.GetAudit(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get audit: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, audit)
}

// HandleListAudits returns the most recent audits.
func (h *AuditHandlers) HandleListAudits(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	audits, err := h.auditService.ListAudits(r.Context(), limit)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list audits: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, audits)
}

// HandleUpdateStatus records a status transition reported by the analysis
// pipeline.
func (h *AuditHandlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	var req models.UpdateAuditStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	audit, err := h.auditService.UpdateStatus(r.Context(), auditID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
			return
		}
		// Unknown status strings land here as a 400.
		httputil.RespondError(w, http.StatusBadRequest, "Failed to update status: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, audit)
}

// HandleWatchAudit streams status changes as newline-delimited JSON until the
// audit reaches a terminal status or the client disconnects. Disconnecting
// cancels the underlying poll loop via the request context.
func (h *AuditHandlers) HandleWatchAudit(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		httputil.RespondError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	err := h.auditService.WatchAudit(r.Context(), auditID, func(audit *models.AuditResponse) error {
		if err := enc.Encode(audit); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		// Headers are already out; the best we can do is log and close.
		log.Printf("WARN [AuditHandlers] Watch stream for audit %s ended with error: %v", auditID, err)
	}
}

// HandleCreateGap records one compliance gap reported by the pipeline.
func (h *AuditHandlers) HandleCreateGap(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	var req models.CreateGapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	gap, err := h.auditService.CreateGap(r.Context(), auditID, req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to create gap: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, gap)
}

// HandleListGaps returns an audit's gaps ordered by severity.
func (h *AuditHandlers) HandleListGaps(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	gaps, err := h.auditService.ListGaps(r.Context(), auditID)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list gaps: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, gaps)
}

// HandleMarkGapApplied flags a gap's remediation as applied.
func (h *AuditHandlers) HandleMarkGapApplied(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}
	gapID, ok := parseUUIDParam(w, r, "gapID")
	if !ok {
		return
	}

	gap, err := h.auditService.MarkGapApplied(r.Context(), auditID, gapID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Gap not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to mark gap applied: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, gap)
}

// HandleExportReport downloads the audit's gap listing as a CSV artifact.
func (h *AuditHandlers) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	data, filename, err := h.exportService.BuildReportCSV(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to build report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("WARN [AuditHandlers] Failed writing report for audit %s: %v", auditID, err)
	}
}

// HandleDashboardStats aggregates recent audits for the dashboard.
func (h *AuditHandlers) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.auditService.DashboardStats(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to compute stats: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
