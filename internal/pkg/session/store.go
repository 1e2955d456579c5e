// Package session keeps the server-side record of issued login sessions
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session id is unknown, expired or revoked
var ErrSessionNotFound = errors.New("session not found")

// Store records live sessions by id
type Store interface {
	Create(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	UserID(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

// RedisStore keeps sessions as expiring redis keys holding the user id
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a session store on top of a redis client
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Create stores the session until ttl elapses
func (s *RedisStore) Create(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// UserID returns the owner of a live session
func (s *RedisStore) UserID(ctx context.Context, sessionID string) (int64, error) {
	value, err := s.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("load session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	return userID, nil
}

// Delete revokes a session; deleting an unknown session is not an error
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
