package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"orderhub/internal/domain"
	"orderhub/internal/repository"
)

// readThrough отдаёт запись из Redis, при промахе берёт из next и кладёт в кэш.
// Отсутствующие записи не кэшируются: новый покупатель должен находиться сразу.
func readThrough[T any](ctx context.Context, rdb *redis.Client, ttl time.Duration, key string, next func() (*T, error)) (*T, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v, nil
		}
	}
	// miss or cache unavailable: go to the source
	v, err := next()
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(v); err == nil {
		_ = rdb.Set(ctx, key, b, ttl).Err()
	}
	return v, nil
}

func key(prefix, kind string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", prefix, kind, id)
}

// Customers кэширующая обёртка над CustomerRepository
type Customers struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	next   repository.CustomerRepository
}

func NewCustomers(rdb *redis.Client, ttl time.Duration, prefix string, next repository.CustomerRepository) *Customers {
	return &Customers{rdb: rdb, ttl: ttl, prefix: prefix, next: next}
}

var _ repository.CustomerRepository = (*Customers)(nil)

func (c *Customers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return readThrough(ctx, c.rdb, c.ttl, key(c.prefix, "customer", id), func() (*domain.Customer, error) {
		return c.next.GetByID(ctx, id)
	})
}

// Hubs кэширующая обёртка над DistributionHubRepository
type Hubs struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	next   repository.DistributionHubRepository
}

func NewHubs(rdb *redis.Client, ttl time.Duration, prefix string, next repository.DistributionHubRepository) *Hubs {
	return &Hubs{rdb: rdb, ttl: ttl, prefix: prefix, next: next}
}

var _ repository.DistributionHubRepository = (*Hubs)(nil)

func (h *Hubs) GetByID(ctx context.Context, id int64) (*domain.DistributionHub, error) {
	return readThrough(ctx, h.rdb, h.ttl, key(h.prefix, "hub", id), func() (*domain.DistributionHub, error) {
		return h.next.GetByID(ctx, id)
	})
}
