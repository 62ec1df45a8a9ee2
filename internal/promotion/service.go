package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/storefront-core/internal/common"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/obs"
)

// Querier captures the database methods required by the promotion service.
type Querier interface {
	GetPromotionByCode(ctx context.Context, arg dbgen.GetPromotionByCodeParams) (dbgen.Promotion, error)
	RedeemPromotion(ctx context.Context, arg dbgen.RedeemPromotionParams) (int64, error)
}

// Applied is a validated promotion ready to be redeemed with an order.
type Applied struct {
	PromotionID  pgtype.UUID
	Code         string
	Discount     int64
	SeenRedeemed int32
}

// PreviewResult describes the outcome of evaluating a promotion without mutating state.
type PreviewResult struct {
	PromoCode            string `json:"promoCode"`
	DiscountCents        int64  `json:"discountCents"`
	DiscountedTotalCents int64  `json:"discountedTotalCents"`
}

// Service evaluates promotion codes against a store and subtotal.
type Service struct {
	Q   Querier
	Now func() time.Time
}

// Evaluate runs the full check sequence and returns the discount on success.
// Rejections are returned as *common.AppError.
func (s *Service) Evaluate(ctx context.Context, storeID pgtype.UUID, code string, subtotal int64) (Applied, error) {
	if s == nil || s.Q == nil {
		return Applied{}, errors.New("promotion service not configured")
	}
	normalized := NormalizeCode(code)
	if normalized == "" {
		return Applied{}, s.reject(ErrNotFound, Rule{})
	}
	p, err := s.Q.GetPromotionByCode(ctx, dbgen.GetPromotionByCodeParams{StoreID: storeID, Upper: normalized})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Applied{}, s.reject(ErrNotFound, Rule{})
		}
		return Applied{}, common.Upstream(fmt.Errorf("load promotion: %w", err))
	}
	rule := RuleFromModel(p)
	if err := rule.Validate(s.now(), subtotal); err != nil {
		return Applied{}, s.reject(err, rule)
	}
	return Applied{
		PromotionID:  p.ID,
		Code:         p.Code,
		Discount:     rule.Discount(subtotal),
		SeenRedeemed: p.TimesRedeemed,
	}, nil
}

// Preview evaluates code against subtotal and reports the discounted total.
func (s *Service) Preview(ctx context.Context, storeID pgtype.UUID, code string, subtotal int64) (PreviewResult, error) {
	if subtotal < 0 {
		return PreviewResult{}, common.Validation("VALIDATION_FAILED", "subtotalCents must not be negative")
	}
	applied, err := s.Evaluate(ctx, storeID, code, subtotal)
	if err != nil {
		return PreviewResult{}, err
	}
	total := subtotal - applied.Discount
	if total < 0 {
		total = 0
	}
	return PreviewResult{PromoCode: applied.Code, DiscountCents: applied.Discount, DiscountedTotalCents: total}, nil
}

// Redeem advances the redemption counter using q, normally a transaction.
// For capped promotions a lost race against another checkout is a conflict.
func (s *Service) Redeem(ctx context.Context, q Querier, storeID pgtype.UUID, applied Applied) error {
	if !applied.PromotionID.Valid {
		return nil
	}
	n, err := q.RedeemPromotion(ctx, dbgen.RedeemPromotionParams{
		ID:           applied.PromotionID,
		StoreID:      storeID,
		SeenRedeemed: applied.SeenRedeemed,
	})
	if err != nil {
		return common.Upstream(fmt.Errorf("redeem promotion: %w", err))
	}
	if n == 0 {
		return common.Conflict("PROMOTION_CONFLICT", "Promo code was updated by another checkout. Please retry.")
	}
	return nil
}

func (s *Service) reject(err error, rule Rule) error {
	obs.ObservePromotionRejection(Reason(err))
	return rejection(err, rule)
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
