package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter counts events for a key within a window. Implementations keep
// their counters in Redis so every API replica shares one budget.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (Decision, error)
}

func unlimited(window time.Duration, max int) Decision {
	return Decision{Allowed: true, Limit: max, Remaining: max, Reset: time.Now().Add(window)}
}
