package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"moviedeck/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKey = "session:token"
	userKey  = "session:user"
)

// TokenStore is the durable storage behind the session: one token and one
// identity under fixed keys, reloaded at startup. Absence means an
// unauthenticated session.
type TokenStore interface {
	Save(ctx context.Context, token string, user models.User) error
	Load(ctx context.Context) (string, models.User, bool, error)
	Clear(ctx context.Context) error
}

// RedisTokenStore persists the session in redis.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, user models.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for persistence: %w", err)
	}
	if err := s.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.client.Set(ctx, userKey, encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Load(ctx context.Context) (string, models.User, bool, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", models.User{}, false, nil
	}
	if err != nil {
		return "", models.User{}, false, fmt.Errorf("failed to read token: %w", err)
	}

	var user models.User
	encoded, err := s.client.Get(ctx, userKey).Result()
	if err != nil && err != redis.Nil {
		return "", models.User{}, false, fmt.Errorf("failed to read user: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal([]byte(encoded), &user); err != nil {
			return "", models.User{}, false, fmt.Errorf("failed to unmarshal stored user: %w", err)
		}
	}
	return token, user, true, nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey, userKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the session in process memory. Used in tests and
// when no durable storage is configured.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	user  models.User
	saved bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.saved = true
	return nil
}

func (s *MemoryTokenStore) Load(_ context.Context) (string, models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return "", models.User{}, false, nil
	}
	return s.token, s.user, true, nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
	s.saved = false
	return nil
}
