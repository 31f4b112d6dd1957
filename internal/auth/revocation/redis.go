package revocation

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisList implements List on redis with per-entry TTLs.
type RedisList struct {
	client *goredis.Client
	prefix string
}

func NewRedisList(client *goredis.Client) *RedisList {
	return &RedisList{
		client: client,
		prefix: "revoked:",
	}
}

func (l *RedisList) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past natural expiry; the codec refuses it anyway.
		return nil
	}
	return l.client.Set(ctx, l.prefix+digest(token), "1", ttl).Err()
}

func (l *RedisList) Contains(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, l.prefix+digest(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
