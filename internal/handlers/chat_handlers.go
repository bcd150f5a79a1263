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

// ChatHandlers handles HTTP requests for document conversations.
type ChatHandlers struct {
	chatService *services.ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService *services.ChatService) *ChatHandlers {
	return &ChatHandlers{chatService: chatService}
}

// HandleGetConversation returns the live conversation for an audit, seeding
// it with the welcome turn if the view was just opened.
func (h *ChatHandlers) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	conv, err := h.chatService.GetConversation(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get conversation: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// HandleSendMessage submits a user question. A submission while a prior one
// is pending returns 409 and leaves the conversation unchanged. Inference
// failures come back as 200 with an apology turn and a transient notice.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conv, err := h.chatService.SendMessage(r.Context(), auditID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
		case errors.Is(err, services.ErrSubmissionInFlight):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrEmptyMessage):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to send message: "+err.Error())
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// HandleClearConversation resets the conversation to exactly its seed turn.
func (h *ChatHandlers) HandleClearConversation(w http.ResponseWriter, r *http.Request) {
	auditID, ok := parseUUIDParam(w, r, "auditID")
	if !ok {
		return
	}

	conv, err := h.chatService.ClearConversation(r.Context(), auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Audit not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to clear conversation: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}
