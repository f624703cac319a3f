package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
)

const defaultKeyPrefix = "sauki:"

// RedisSessionStore keeps admin sessions as expiring redis keys
type RedisSessionStore struct {
	client RedisClient
	prefix string
	logger core.Logger
}

var _ persistence.SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a session store; an empty prefix falls back to "sauki:"
func NewRedisSessionStore(client RedisClient, prefix string, logger core.Logger) *RedisSessionStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisSessionStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return s.prefix + "session:" + sessionID
}

// Save stores subject under sessionID for ttl
func (s *RedisSessionStore) Save(ctx context.Context, sessionID, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	if err := s.client.Set(ctx, s.key(sessionID), subject, ttl); err != nil {
		s.logger.Error("Failed to store session", map[string]any{"error": err.Error()})
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns the subject of a live session
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	subject, err := s.client.Get(ctx, s.key(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return "", errs.ErrInvalidToken
	}
	if err != nil {
		s.logger.Error("Failed to read session", map[string]any{"error": err.Error()})
		return "", fmt.Errorf("read session: %w", err)
	}
	return subject, nil
}

// Delete revokes a session
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
