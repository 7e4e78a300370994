// Package session keeps admin refresh sessions in Redis. The access token is
// a stateless JWT; the refresh token here is what lets a browser keep its
// back-office session across access-token expiry, and what logout revokes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"imovel-service/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a refresh token is unknown, expired or revoked
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Session identifies the signed-in admin behind a refresh token
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Store is the Redis-backed session store
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects the session store to Redis
func NewStore(cfg *config.RedisConfig, ttl time.Duration) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Store{client: client, ttl: ttl}
}

// Ping verifies the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Create stores a new session and returns its refresh token
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	token := uuid.New().String()
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a refresh token to its session
func (s *Store) Get(ctx context.Context, token string) (Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete revokes a refresh token
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
