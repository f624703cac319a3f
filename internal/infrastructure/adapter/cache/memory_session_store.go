package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
)

type memorySession struct {
	subject   string
	expiresAt time.Time
}

// MemorySessionStore is used when redis is disabled. Sessions do not survive a
// restart and are not shared between instances.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	clock    core.Clock
}

var _ persistence.SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-process session store
func NewMemorySessionStore(clock core.Clock) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		clock:    clock,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired(now)
	s.sessions[sessionID] = memorySession{subject: subject, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return "", errs.ErrInvalidToken
	}
	if !s.clock.Now().Before(session.expiresAt) {
		delete(s.sessions, sessionID)
		return "", errs.ErrInvalidToken
	}
	return session.subject, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// evictExpired runs on every Save so the map stays bounded by live sessions; caller holds mu
func (s *MemorySessionStore) evictExpired(now time.Time) {
	for id, session := range s.sessions {
		if !now.Before(session.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
