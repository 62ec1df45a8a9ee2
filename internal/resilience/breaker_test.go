package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/obs"
)

func TestBreakerTransitions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewBreaker("payments", 2, 0.5, time.Minute)
	b.Now = func() time.Time { return now }
	ctx := context.Background()

	require.True(t, b.Allow(ctx))
	b.Report(ctx, false)
	require.Equal(t, Closed, b.State())
	b.Report(ctx, false)
	require.Equal(t, Open, b.State())
	require.False(t, b.Allow(ctx))

	now = now.Add(time.Minute)
	require.True(t, b.Allow(ctx))
	require.Equal(t, HalfOpen, b.State())
	require.False(t, b.Allow(ctx), "only one probe while half-open")

	b.Report(ctx, true)
	require.Equal(t, Closed, b.State())
}

func TestBreakerDo(t *testing.T) {
	b := NewBreaker("payments", 1, 1, time.Hour)
	ctx := context.Background()
	boom := errors.New("boom")

	require.ErrorIs(t, b.Do(ctx, func(context.Context) error { return boom }), boom)
	require.Equal(t, Open, b.State())

	called := false
	err := b.Do(ctx, func(context.Context) error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpenCircuit)
	require.False(t, called)
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	b := NewBreaker("payments", 1, 1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Do(ctx, func(ctx context.Context) error { return ctx.Err() })
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Closed, b.State())
}

func TestBreakerMetrics(t *testing.T) {
	obs.MustRegisterDomainMetrics("storefront_breaker_test", prometheus.NewRegistry())
	b := NewBreaker("metrics-target", 1, 1, time.Hour)

	b.Report(context.Background(), false)
	require.Equal(t, float64(1), testutil.ToFloat64(obs.BreakerState.WithLabelValues("metrics-target")))
	require.Equal(t, float64(1), testutil.ToFloat64(obs.BreakerTransitionsTotal.WithLabelValues("metrics-target", "closed", "open")))
}
