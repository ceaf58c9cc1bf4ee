package fixture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yarrowhq/ui-verify/logger"
)

var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// Session represents a signed-in portal session.
type Session struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// sessionStore is an in-memory session store.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *sessionStore) Set(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *sessionStore) Get(sessionID uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (s *sessionStore) Delete(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Cleanup removes expired sessions and reports how many were dropped.
func (s *sessionStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := time.Now()
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// SessionManager manages portal sessions with automatic cleanup.
type SessionManager struct {
	store    *sessionStore
	duration time.Duration
	logger   logger.Logger
	stopCh   chan struct{}
}

// NewSessionManager creates a new session manager with the given duration.
func NewSessionManager(duration time.Duration, log logger.Logger) *SessionManager {
	return &SessionManager{
		store:    newSessionStore(),
		duration: duration,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Create creates a new session for the given email.
func (m *SessionManager) Create(email string) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.duration),
	}

	m.store.Set(session)

	m.logger.Info(context.Background(), "session created", map[string]interface{}{
		"session_id": session.ID,
		"email":      email,
	})

	return session
}

// Get retrieves a session by ID.
func (m *SessionManager) Get(sessionID uuid.UUID) (*Session, error) {
	return m.store.Get(sessionID)
}

// Delete deletes a session by ID.
func (m *SessionManager) Delete(sessionID uuid.UUID) {
	m.store.Delete(sessionID)
	m.logger.Info(context.Background(), "session deleted", map[string]interface{}{
		"session_id": sessionID,
	})
}

// StartCleanup starts a background goroutine that periodically cleans up expired sessions.
func (m *SessionManager) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				removed := m.store.Cleanup()
				if removed > 0 {
					m.logger.Info(context.Background(), "cleaned up expired sessions", map[string]interface{}{
						"removed_count": removed,
					})
				}
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine.
func (m *SessionManager) StopCleanup() {
	close(m.stopCh)
}
