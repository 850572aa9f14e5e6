package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fastgrab/order-svc/internal/domain"
	"fastgrab/order-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "fastGrabCart:"
	userKeyPrefix = "fastGrabUserDetails:"
)

// RedisSessionStore keeps each session's cart and shipping details under
// their own keys. Every write refreshes the TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) ForSession(sessionID string) service.SessionPersistence {
	return &redisSession{
		client:  s.Client,
		ttl:     s.TTL,
		cartKey: cartKeyPrefix + sessionID,
		userKey: userKeyPrefix + sessionID,
	}
}

type redisSession struct {
	client  *redis.Client
	ttl     time.Duration
	cartKey string
	userKey string
}

func (s *redisSession) LoadCart(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	found, err := s.load(ctx, s.cartKey, &lines)
	if err != nil || !found {
		return nil, err
	}
	return lines, nil
}

func (s *redisSession) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return s.client.Del(ctx, s.cartKey).Err()
	}
	return s.save(ctx, s.cartKey, lines)
}

func (s *redisSession) LoadUserDetails(ctx context.Context) (*domain.UserDetails, error) {
	var details domain.UserDetails
	found, err := s.load(ctx, s.userKey, &details)
	if err != nil || !found {
		return nil, err
	}
	return &details, nil
}

func (s *redisSession) SaveUserDetails(ctx context.Context, details domain.UserDetails) error {
	return s.save(ctx, s.userKey, details)
}

func (s *redisSession) ClearUserDetails(ctx context.Context) error {
	return s.client.Del(ctx, s.userKey).Err()
}

func (s *redisSession) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisSession) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, s.ttl).Err()
}
