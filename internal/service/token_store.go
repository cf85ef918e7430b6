package service

import (
	"context"
	"fmt"
	"quiz_room_hub/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore remembers logged-out refresh tokens until they expire.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisTokenStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client, Prefix: "quizhub:revoked:"}
}

func (s *RedisTokenStore) key(jti string) string {
	return s.Prefix + jti
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, s.key(jti), fmt.Sprint(userID), ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DBTokenStore keeps revocations in the revoked_tokens table. It is used
// when Redis is disabled.
type DBTokenStore struct {
	Repo *repository.TokenRepository
}

func NewDBTokenStore(repo *repository.TokenRepository) *DBTokenStore {
	return &DBTokenStore{Repo: repo}
}

func (s *DBTokenStore) Revoke(_ context.Context, jti string, userID uint, expiresAt time.Time) error {
	if _, err := s.Repo.PurgeExpired(time.Now()); err != nil {
		return err
	}
	return s.Repo.Revoke(jti, userID, expiresAt)
}

func (s *DBTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.Repo.IsRevoked(jti)
}
