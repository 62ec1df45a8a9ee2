package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Plan identifies a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanGrowth  Plan = "growth"
	PlanScale   Plan = "scale"
)

// Config describes one tier.
type Config struct {
	Plan            Plan
	Label           string
	MonthlyPriceUSD int
	PlatformFeeBps  int
}

var plans = map[Plan]Config{
	PlanFree:    {Plan: PlanFree, Label: "Free", MonthlyPriceUSD: 0, PlatformFeeBps: 200},
	PlanStarter: {Plan: PlanStarter, Label: "Starter", MonthlyPriceUSD: 19, PlatformFeeBps: 100},
	PlanGrowth:  {Plan: PlanGrowth, Label: "Growth", MonthlyPriceUSD: 49, PlatformFeeBps: 50},
	PlanScale:   {Plan: PlanScale, Label: "Scale", MonthlyPriceUSD: 99, PlatformFeeBps: 0},
}

// Lookup returns the tier for name. Unknown names fall back to free.
func Lookup(name string) Config {
	if cfg, ok := plans[Plan(strings.ToLower(strings.TrimSpace(name)))]; ok {
		return cfg
	}
	return plans[PlanFree]
}

// Querier reads the store's active subscription.
type Querier interface {
	GetActiveSubscriptionPlan(ctx context.Context, storeID pgtype.UUID) (string, error)
}

// Plans resolves the platform fee rate for a store.
type Plans struct {
	Q Querier
}

// FeeBps returns the fee in basis points of the store's active plan.
// A store without an active subscription pays the free tier rate.
func (p Plans) FeeBps(ctx context.Context, storeID pgtype.UUID) (int, error) {
	if p.Q == nil {
		return plans[PlanFree].PlatformFeeBps, nil
	}
	name, err := p.Q.GetActiveSubscriptionPlan(ctx, storeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plans[PlanFree].PlatformFeeBps, nil
		}
		return 0, fmt.Errorf("billing: load subscription: %w", err)
	}
	return Lookup(name).PlatformFeeBps, nil
}
