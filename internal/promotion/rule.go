// Package promotion validates promo codes and computes the discount they grant.
package promotion

import (
	"errors"
	"strings"
	"time"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/pricing"
)

var (
	// ErrNotFound is returned when no promotion matches the code in the store.
	ErrNotFound = errors.New("promotion not found")
	// ErrInactive is returned when the promotion has been switched off.
	ErrInactive = errors.New("promotion inactive")
	// ErrNotStarted is returned before the promotion window opens.
	ErrNotStarted = errors.New("promotion not started")
	// ErrExpired is returned after the promotion window closed.
	ErrExpired = errors.New("promotion expired")
	// ErrExhausted indicates the redemption cap has been reached.
	ErrExhausted = errors.New("promotion redemption limit reached")
	// ErrBelowMinimum indicates the subtotal did not reach the promotion minimum.
	ErrBelowMinimum = errors.New("promotion minimum subtotal not met")
)

// Rule captures the runtime constraints of a promotion.
type Rule struct {
	Code           string
	Type           pricing.DiscountType
	Value          int64
	MinSubtotal    int64
	MaxRedemptions *int32
	TimesRedeemed  int32
	StartsAt       *time.Time
	EndsAt         *time.Time
	Active         bool
}

// Validate checks the rule at now against subtotal. Checks run in a fixed
// order so preview and checkout report the same reason.
func (r Rule) Validate(now time.Time, subtotal int64) error {
	if !r.Active {
		return ErrInactive
	}
	if r.StartsAt != nil && r.StartsAt.After(now) {
		return ErrNotStarted
	}
	if r.EndsAt != nil && r.EndsAt.Before(now) {
		return ErrExpired
	}
	if r.MaxRedemptions != nil && r.TimesRedeemed >= *r.MaxRedemptions {
		return ErrExhausted
	}
	if subtotal < r.MinSubtotal {
		return ErrBelowMinimum
	}
	return nil
}

// Discount returns the discount the rule grants on subtotal.
func (r Rule) Discount(subtotal int64) int64 {
	return pricing.DiscountCents(subtotal, r.Type, r.Value)
}

// NormalizeCode trims and upper-cases a promo code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RuleFromModel converts the generated model into a Rule used for evaluation.
func RuleFromModel(p dbgen.Promotion) Rule {
	rule := Rule{
		Code:          p.Code,
		Type:          pricing.DiscountType(p.DiscountType),
		Value:         int64(p.DiscountValue),
		MinSubtotal:   p.MinSubtotalCents,
		TimesRedeemed: p.TimesRedeemed,
		Active:        p.IsActive,
	}
	if p.MaxRedemptions.Valid {
		limit := p.MaxRedemptions.Int32
		rule.MaxRedemptions = &limit
	}
	if p.StartsAt.Valid {
		starts := p.StartsAt.Time
		rule.StartsAt = &starts
	}
	if p.EndsAt.Valid {
		ends := p.EndsAt.Time
		rule.EndsAt = &ends
	}
	return rule
}
