package services

import (
	"context"
	"sync"

	"roga/models"
)

// MemorySessionStore keeps sessions in process memory. It is the default
// when no database is configured.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	turns    map[string][]models.Turn
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.Session),
		turns:    make(map[string][]models.Turn),
	}
}

func (m *MemorySessionStore) CreateSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.turns[s.ID] = nil
	return nil
}

func (m *MemorySessionStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

// AppendTurn stores t and advances the session's current round.
func (m *MemorySessionStore) AppendTurn(_ context.Context, t models.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[t.SessionID]
	if !ok {
		return ErrSessionNotFound
	}
	m.turns[t.SessionID] = append(m.turns[t.SessionID], t)
	s.CurrentRound = t.Round
	m.sessions[t.SessionID] = s
	return nil
}

func (m *MemorySessionStore) ListTurns(_ context.Context, sessionID string) ([]models.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]models.Turn, len(m.turns[sessionID]))
	copy(out, m.turns[sessionID])
	return out, nil
}
