package layoutstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"griddeck/internal/dashboard"
)

const (
	layoutKeyPrefix = "griddeck:layout:"
	ownerKeyPrefix  = "griddeck:owner:"
)

// RedisStore keeps layout records in Redis for setups where the dashboard is
// shared across machines. Records live under griddeck:layout:<id>; each
// owner's ids are tracked in a list under griddeck:owner:<owner>:layouts so
// List preserves save order.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

func layoutKey(id string) string   { return layoutKeyPrefix + id }
func ownerKey(owner string) string { return ownerKeyPrefix + owner + ":layouts" }

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, layoutID string) (dashboard.Layout, error) {
	data, err := s.client.Get(ctx, layoutKey(layoutID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dashboard.Layout{}, fmt.Errorf("layout %q: %w", layoutID, ErrNotFound)
	}
	if err != nil {
		return dashboard.Layout{}, err
	}
	return decode(data)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, layout dashboard.Layout) error {
	data, err := encode(layout)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, layoutKey(layout.ID), data, 0)
	if layout.OwnerID != "" {
		// LRem+RPush keeps the id unique while moving it to save order.
		pipe.LRem(ctx, ownerKey(layout.OwnerID), 0, layout.ID)
		pipe.RPush(ctx, ownerKey(layout.OwnerID), layout.ID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context, ownerID string) ([]dashboard.Layout, error) {
	ids, err := s.client.LRange(ctx, ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]dashboard.Layout, 0, len(ids))
	for _, id := range ids {
		l, err := s.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, layoutID string) error {
	l, err := s.Load(ctx, layoutID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, layoutKey(layoutID))
	if l.OwnerID != "" {
		pipe.LRem(ctx, ownerKey(l.OwnerID), 0, layoutID)
	}
	_, err = pipe.Exec(ctx)
	return err
}
