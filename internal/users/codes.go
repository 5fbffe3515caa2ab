package users

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore holds short-lived verification codes and reset tokens. Backed by
// redis in production; tests substitute a map.
type CodeStore interface {
	SetCode(ctx context.Context, key, value string, ttl time.Duration) error
	GetCode(ctx context.Context, key string) (string, error)
	DelCode(ctx context.Context, key string) error
}

type RedisCodes struct{ Client *redis.Client }

func (c *RedisCodes) SetCode(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

// GetCode returns "" for a missing or expired key.
func (c *RedisCodes) GetCode(ctx context.Context, key string) (string, error) {
	v, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (c *RedisCodes) DelCode(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}
