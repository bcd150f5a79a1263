// Package conversation holds the in-memory chat state for open audit views.
// A conversation is an ordered, append-only sequence of turns seeded with one
// synthetic assistant welcome turn. It lives for the duration of the view and
// is deliberately not persisted.
package conversation

import (
	"fmt"
	"sync"

	"auditease-backend/internal/models"
)

// SeedContent builds the welcome turn text for a document.
func SeedContent(documentName string) string {
	return fmt.Sprintf("Hello! I've analyzed **%s**. You can ask me anything about its clauses, liabilities, or obligations.", documentName)
}

// Conversation is the turn sequence for one audit view. All methods are safe
// for concurrent use; at most one submission may be in flight at a time.
type Conversation struct {
	mu       sync.Mutex
	turns    []models.Turn
	seed     models.Turn
	inFlight bool
}

// New creates a conversation seeded with the welcome turn for documentName.
func New(documentName string) *Conversation {
	seed := models.NewTurn(models.RoleAssistant, SeedContent(documentName))
	return &Conversation{
		turns: []models.Turn{seed},
		seed:  seed,
	}
}

// Append adds a turn to the end of the sequence. Turns are never edited,
// deleted individually, or reordered.
func (c *Conversation) Append(t models.Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// Reset replaces the sequence with exactly the original seed turn.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = []models.Turn{c.seed}
}

// Turns returns a copy of the current sequence in display order.
func (c *Conversation) Turns() []models.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the current number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// BeginSubmission marks a submission as in flight. It returns false if one is
// already pending, which makes the second submission a no-op and prevents two
// assistant responses from racing for the same conversation.
func (c *Conversation) BeginSubmission() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

// EndSubmission clears the in-flight mark.
func (c *Conversation) EndSubmission() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}
