package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// FixedWindow delegates counting to ulule/limiter's Redis store.
type FixedWindow struct {
	Store limiter.Store
}

// NewFixedWindow builds a fixed window limiter on the given Redis client.
func NewFixedWindow(client *redis.Client, prefix string) (*FixedWindow, error) {
	store, err := limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("ratelimit: fixed window store: %w", err)
	}
	return &FixedWindow{Store: store}, nil
}

// Allow increments the counter for key in the current window.
func (f *FixedWindow) Allow(ctx context.Context, key string, window time.Duration, max int) (Decision, error) {
	if f == nil || f.Store == nil || max <= 0 || window <= 0 {
		return unlimited(window, max), nil
	}
	lim := limiter.New(f.Store, limiter.Rate{Period: window, Limit: int64(max)})
	res, err := lim.Get(ctx, key)
	if err != nil {
		return Decision{Limit: max, Reset: time.Now().Add(window)}, fmt.Errorf("ratelimit: fixed window: %w", err)
	}
	return Decision{
		Allowed:   !res.Reached,
		Limit:     int(res.Limit),
		Remaining: int(res.Remaining),
		Reset:     time.Unix(res.Reset, 0),
	}, nil
}
