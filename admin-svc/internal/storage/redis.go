package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const pinnedOrderKey = "fastGrabAdmin:pinnedOrder"

// RedisPinStore remembers the order the operator pinned to the top of the dashboard.
type RedisPinStore struct {
	Client *redis.Client
}

func NewRedisPinStore(client *redis.Client) *RedisPinStore {
	return &RedisPinStore{Client: client}
}

func (s *RedisPinStore) Pinned(ctx context.Context) (string, error) {
	id, err := s.Client.Get(ctx, pinnedOrderKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return id, err
}

func (s *RedisPinStore) Pin(ctx context.Context, orderID string) error {
	return s.Client.Set(ctx, pinnedOrderKey, orderID, 0).Err()
}

func (s *RedisPinStore) Unpin(ctx context.Context) error {
	return s.Client.Del(ctx, pinnedOrderKey).Err()
}
