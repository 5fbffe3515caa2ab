package orders

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/ollanpharmacy/pharmacy-api/internal/redisx"
)

// AdminCache is the time-boxed cache in front of the admin order list. Every
// mutating engine operation invalidates it post-commit.
type AdminCache interface {
	Get(ctx context.Context) ([]Order, bool)
	Set(ctx context.Context, list []Order)
	Invalidate(ctx context.Context)
}

type RedisAdminCache struct{ Client *redis.Client }

func (c *RedisAdminCache) Get(ctx context.Context) ([]Order, bool) {
	raw, err := c.Client.Get(ctx, redisx.KeyAdminOrders).Result()
	if err != nil || raw == "" {
		return nil, false
	}
	var list []Order
	if json.Unmarshal([]byte(raw), &list) != nil {
		return nil, false
	}
	return list, true
}

func (c *RedisAdminCache) Set(ctx context.Context, list []Order) {
	b, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, redisx.KeyAdminOrders, b, redisx.TTLAdminOrders).Err()
}

func (c *RedisAdminCache) Invalidate(ctx context.Context) {
	_ = c.Client.Del(ctx, redisx.KeyAdminOrders).Err()
}
