package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

const productTTL = time.Minute

// ProductCache is a read-through cache in front of the product repository.
// Concurrent misses for the same product are collapsed into one DB load.
type ProductCache struct {
	repo  repository.ProductRepository
	rdb   *redis.Client // nil disables caching
	group singleflight.Group
}

func NewProductCache(repo repository.ProductRepository, rdb *redis.Client) *ProductCache {
	return &ProductCache{repo: repo, rdb: rdb}
}

func (c *ProductCache) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	if c.rdb == nil {
		return c.repo.FindByID(ctx, id)
	}

	key := fmt.Sprintf("product:%d", id)
	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var p domain.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		p, err := c.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			if data, err := json.Marshal(p); err == nil {
				c.rdb.Set(ctx, key, data, productTTL)
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// Invalidate drops the cached entry, e.g. after inventory updates.
func (c *ProductCache) Invalidate(ctx context.Context, id uint64) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, fmt.Sprintf("product:%d", id))
}
