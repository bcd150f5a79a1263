package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks the live conversation per audit. Conversations are created
// lazily when an audit's chat is first touched and dropped on clear-and-close;
// there is no durable chat history.
type Manager struct {
	mu    sync.RWMutex
	convs map[uuid.UUID]*Conversation
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{convs: make(map[uuid.UUID]*Conversation)}
}

// GetOrCreate returns the conversation for auditID, seeding a new one from
// documentName if none exists yet.
func (m *Manager) GetOrCreate(auditID uuid.UUID, documentName string) *Conversation {
	m.mu.RLock()
	conv, ok := m.convs[auditID]
	m.mu.RUnlock()
	if ok {
		return conv
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Re-check under the write lock; another request may have seeded it.
	if conv, ok := m.convs[auditID]; ok {
		return conv
	}
	conv = New(documentName)
	m.convs[auditID] = conv
	return conv
}

// Get returns the conversation for auditID, or nil if none is live.
func (m *Manager) Get(auditID uuid.UUID) *Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.convs[auditID]
}

// Remove discards the conversation for auditID.
func (m *Manager) Remove(auditID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.convs, auditID)
}
