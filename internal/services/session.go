package services

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SessionKeyPrefix is the Redis key prefix for sessions issued by the auth service
const SessionKeyPrefix = "session:"

// SessionStore resolves opaque session tokens to user IDs.
// Sessions are written by the upstream auth service; this store only reads them.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// ValidateSession checks if a session token is valid and returns the user ID
func (s *SessionStore) ValidateSession(ctx context.Context, sessionToken string) (string, bool, error) {
	if sessionToken == "" {
		return "", false, nil
	}

	userID, err := s.rdb.Get(ctx, SessionKeyPrefix+sessionToken).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if userID == "" {
		return "", false, nil
	}

	return userID, true, nil
}
