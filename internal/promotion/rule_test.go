package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/pricing"
)

func TestRuleValidateOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	capped := int32(5)

	cases := []struct {
		name string
		rule Rule
		sub  int64
		want error
	}{
		{"inactive wins over everything", Rule{Active: false, EndsAt: &past, MinSubtotal: 5000}, 10, ErrInactive},
		{"not started", Rule{Active: true, StartsAt: &future}, 5000, ErrNotStarted},
		{"expired", Rule{Active: true, EndsAt: &past}, 5000, ErrExpired},
		{"exhausted before minimum", Rule{Active: true, MaxRedemptions: &capped, TimesRedeemed: 5, MinSubtotal: 9000}, 10, ErrExhausted},
		{"below minimum", Rule{Active: true, MinSubtotal: 1000}, 999, ErrBelowMinimum},
		{"exactly minimum", Rule{Active: true, MinSubtotal: 1000}, 1000, nil},
		{"open window", Rule{Active: true, StartsAt: &past, EndsAt: &future}, 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate(now, tc.sub)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRuleDiscount(t *testing.T) {
	require.Equal(t, int64(1000), Rule{Type: pricing.DiscountFixed, Value: 2000}.Discount(1000))
	require.Equal(t, int64(1000), Rule{Type: pricing.DiscountPercent, Value: 150}.Discount(1000))
	require.Equal(t, int64(360), Rule{Type: pricing.DiscountPercent, Value: 10}.Discount(3600))
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "SPRING10", NormalizeCode("  spring10 "))
}
