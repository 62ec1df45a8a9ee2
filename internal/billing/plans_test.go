package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/db/dbtest"
)

func TestLookup(t *testing.T) {
	require.Equal(t, 200, Lookup("free").PlatformFeeBps)
	require.Equal(t, 100, Lookup("starter").PlatformFeeBps)
	require.Equal(t, 50, Lookup(" Growth ").PlatformFeeBps)
	require.Equal(t, 0, Lookup("scale").PlatformFeeBps)
	require.Equal(t, PlanFree, Lookup("enterprise").Plan)
}

func TestPlansFeeBps(t *testing.T) {
	mem := dbtest.New()
	paid := mem.AddStore("olive-shop", "active")
	unpaid := mem.AddStore("cedar-shop", "active")
	mem.SetPlan(paid.ID, "growth")
	p := Plans{Q: mem.Querier()}

	bps, err := p.FeeBps(context.Background(), paid.ID)
	require.NoError(t, err)
	require.Equal(t, 50, bps)

	bps, err = p.FeeBps(context.Background(), unpaid.ID)
	require.NoError(t, err)
	require.Equal(t, 200, bps)

	mem.FailOn("GetActiveSubscriptionPlan", errors.New("down"))
	_, err = p.FeeBps(context.Background(), paid.ID)
	require.ErrorContains(t, err, "down")
}
