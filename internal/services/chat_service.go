package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"auditease-backend/internal/conversation"
	"auditease-backend/internal/markup"
	"auditease-backend/internal/models"
	"auditease-backend/internal/prompt"
	"auditease-backend/internal/store"
)

// apologyContent is the fixed assistant turn appended when the inference call
// fails for any reason. No distinction is made between auth, network,
// rate-limit or malformed-response failures.
const apologyContent = "I'm sorry, I encountered an error while analyzing the document. Please try again."

// failureNotice is the transient user-facing notification raised alongside
// the apology turn.
const failureNotice = "Failed to get answer from AI"

// ErrSubmissionInFlight is returned when a message is submitted while a prior
// submission on the same conversation has not resolved yet.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this conversation")

// ErrEmptyMessage is returned for blank user messages.
var ErrEmptyMessage = errors.New("message must not be empty")

// InferenceGateway is the request/response call to the hosted model. All
// conversational memory is re-sent on every call; the gateway is stateless.
type InferenceGateway interface {
	GenerateContent(ctx context.Context, payload string) (string, error)
}

// ChatService handles document-grounded conversations for audit views.
type ChatService struct {
	store   store.Store
	gateway InferenceGateway
	manager *conversation.Manager
}

// NewChatService creates a new ChatService.
func NewChatService(st store.Store, gateway InferenceGateway) *ChatService {
	return &ChatService{
		store:   st,
		gateway: gateway,
		manager: conversation.NewManager(),
	}
}

// GetConversation returns the live conversation for an audit, seeding a new
// one from the subject document's name if the view was just opened.
func (s *ChatService) GetConversation(ctx context.Context, auditID uuid.UUID) (*models.ConversationResponse, error) {
	audit, err := s.store.GetAuditByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	conv := s.manager.GetOrCreate(auditID, audit.SubjectName)
	return s.mapConversation(auditID, conv, ""), nil
}

// SendMessage appends the user's question, composes the grounded payload and
// appends the assistant's answer. A gateway failure is recovered locally: the
// conversation gains one fixed apology turn and the response carries a
// transient notice. The failed turn is never retried automatically.
func (s *ChatService) SendMessage(ctx context.Context, auditID uuid.UUID, message string) (*models.ConversationResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	audit, err := s.store.GetAuditByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	conv := s.manager.GetOrCreate(auditID, audit.SubjectName)

	// One submission at a time per conversation; a second submission while
	// this one is pending is a no-op for the caller.
	if !conv.BeginSubmission() {
		return nil, ErrSubmissionInFlight
	}
	defer conv.EndSubmission()

	// History is the state before this submission, minus the seed turn.
	history := conv.Turns()[1:]
	conv.Append(models.NewTurn(models.RoleUser, message))

	payload := prompt.Compose(audit.SubjectName, prompt.Excerpt(audit.SubjectText), history, message)

	answer, err := s.gateway.GenerateContent(ctx, payload)
	if err != nil {
		log.Printf("ERROR [ChatService] Inference call failed for audit %s: %v", auditID, err)
		conv.Append(models.NewTurn(models.RoleAssistant, apologyContent))
		return s.mapConversation(auditID, conv, failureNotice), nil
	}

	// Model output is tag-stripped once at this boundary, so the formatter
	// only ever emits its own three substitutions.
	conv.Append(models.NewTurn(models.RoleAssistant, markup.StripTags(answer)))
	return s.mapConversation(auditID, conv, ""), nil
}

// ClearConversation resets the audit's conversation to exactly the seed turn.
// Clearing a chat that was never opened seeds it, mirroring GetConversation.
func (s *ChatService) ClearConversation(ctx context.Context, auditID uuid.UUID) (*models.ConversationResponse, error) {
	audit, err := s.store.GetAuditByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	conv := s.manager.GetOrCreate(auditID, audit.SubjectName)
	conv.Reset()
	return s.mapConversation(auditID, conv, ""), nil
}

// mapConversation converts live conversation state to the API response DTO,
// rendering each turn's display HTML.
func (s *ChatService) mapConversation(auditID uuid.UUID, conv *conversation.Conversation, notice string) *models.ConversationResponse {
	turns := conv.Turns()
	resp := &models.ConversationResponse{
		AuditID: auditID,
		Turns:   make([]models.TurnResponse, 0, len(turns)),
		Notice:  notice,
	}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, models.TurnResponse{
			ID:        t.ID,
			Role:      t.Role,
			Content:   t.Content,
			HTML:      markup.Render(t.Content),
			Timestamp: t.Timestamp,
		})
	}
	return resp
}
