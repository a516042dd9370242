package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-lookup/user-svc/internal/domain"
)

// RedisSessionStore maps session:{token} to the owner's email and tracks the
// tokens of each user in user_sessions:{email}.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) userKey(email string) string {
	return "user_sessions:" + email
}

func (s *RedisSessionStore) Save(ctx context.Context, session domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = s.TTL
	}

	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(session.Token), session.Email, ttl)
		pipe.SAdd(ctx, s.userKey(session.Email), session.Token)
		pipe.Expire(ctx, s.userKey(session.Email), ttl)
		return nil
	})
	return err
}

// Email returns the owner of a live session token.
func (s *RedisSessionStore) Email(ctx context.Context, token string) (string, error) {
	email, err := s.Client.Get(ctx, s.sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	return email, err
}

func (s *RedisSessionStore) RevokeAll(ctx context.Context, email string) error {
	tokens, err := s.Client.SMembers(ctx, s.userKey(email)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, s.sessionKey(token))
	}
	keys = append(keys, s.userKey(email))
	return s.Client.Del(ctx, keys...).Err()
}
