package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/audit"
	"github.com/noah-isme/storefront-core/internal/billing"
	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/events"
	"github.com/noah-isme/storefront-core/internal/inventory"
	"github.com/noah-isme/storefront-core/internal/obs"
	"github.com/noah-isme/storefront-core/internal/order"
	"github.com/noah-isme/storefront-core/internal/payment"
	"github.com/noah-isme/storefront-core/internal/pricing"
	"github.com/noah-isme/storefront-core/internal/promotion"
)

// FeeSource resolves a store's platform fee rate.
type FeeSource interface {
	FeeBps(ctx context.Context, storeID pgtype.UUID) (int, error)
}

// Input is a shopper's checkout request.
type Input struct {
	StoreSlug string
	Email     string
	PromoCode string
	Items     []catalog.Item
}

// Output is returned for a paid order.
type Output struct {
	OrderID          string  `json:"orderId"`
	Status           string  `json:"status"`
	SubtotalCents    int64   `json:"subtotalCents"`
	TotalCents       int64   `json:"totalCents"`
	PlatformFeeCents int64   `json:"platformFeeCents"`
	DiscountCents    int64   `json:"discountCents"`
	PromoCode        *string `json:"promoCode"`
	PaymentMode      string  `json:"paymentMode"`
}

// Service turns a cart into a paid order.
//
// Reads happen before the transaction. Inside one transaction the service
// decrements stock, creates the order and items, appends the sale movements,
// advances the promotion counter and records the domain event. Audit, cache
// invalidation and event publication run only after commit.
type Service struct {
	Reader   catalog.Reader
	Promos   *promotion.Service
	Fees     FeeSource
	Payments payment.Gateway
	Tx       db.TxRunner
	Bus      *events.Bus
	Audit    audit.Recorder
	Cache    inventory.Invalidator
	Logger   zerolog.Logger

	reconciler inventory.Reconciler
	persister  order.Persister
}

// Checkout places an order. Errors are *common.AppError values except for
// misconfiguration.
func (s *Service) Checkout(ctx context.Context, in Input) (out Output, err error) {
	if s == nil || s.Tx == nil || s.Payments == nil || s.Reader.Q == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	defer func() {
		obs.ObserveCheckout(result(err))
	}()

	snap, err := s.Reader.Load(ctx, in.StoreSlug, in.Items)
	if err != nil {
		return Output{}, err
	}
	lines := pricingLines(snap)
	subtotal := pricing.Subtotal(lines)

	var applied promotion.Applied
	if code := strings.TrimSpace(in.PromoCode); code != "" {
		if s.Promos == nil {
			return Output{}, errors.New("checkout: promotion service not configured")
		}
		applied, err = s.Promos.Evaluate(ctx, snap.Store.ID, code, subtotal)
		if err != nil {
			return Output{}, err
		}
	}

	var fees FeeSource = billing.Plans{}
	if s.Fees != nil {
		fees = s.Fees
	}
	feeBps, err := fees.FeeBps(ctx, snap.Store.ID)
	if err != nil {
		return Output{}, common.Upstream(err)
	}
	totals := pricing.Assemble(lines, applied.Discount, feeBps)

	paid, err := s.Payments.Charge(ctx, payment.Request{
		StoreID:       db.UUIDString(snap.Store.ID),
		CustomerEmail: in.Email,
		AmountCents:   totals.Total,
		Currency:      snap.Store.Currency,
	})
	if err != nil {
		if common.IsAppError(err) {
			return Output{}, err
		}
		return Output{}, common.Upstream(fmt.Errorf("charge: %w", err))
	}
	if !paid.Paid() {
		return Output{}, common.BusinessRule("PAYMENT_FAILED", "Payment was not accepted.").
			WithDetails(map[string]any{"reason": paid.Reason})
	}

	var (
		created dbgen.Order
		ev      dbgen.DomainEvent
	)
	err = s.Tx.WithinTx(ctx, func(q dbgen.Querier) error {
		if err := s.reconciler.Reserve(ctx, q, snap); err != nil {
			return err
		}
		var err error
		created, err = s.persister.Create(ctx, q, order.Input{
			Snapshot:      snap,
			CustomerEmail: in.Email,
			Totals:        totals,
			PromoCode:     applied.Code,
			Payment:       paid,
		})
		if err != nil {
			return err
		}
		if err := s.reconciler.Record(ctx, q, snap, created.ID); err != nil {
			return err
		}
		if err := s.Promos.Redeem(ctx, q, snap.Store.ID, applied); err != nil {
			return err
		}
		if s.Bus != nil {
			ev, err = s.Bus.Emit(ctx, q, snap.Store.ID, events.TopicOrderPaid, created.ID, orderPayload(created, snap))
			if err != nil {
				return common.Upstream(err)
			}
		}
		return nil
	})
	if err != nil {
		return Output{}, err
	}

	s.afterCommit(ctx, snap, created, ev)
	return toOutput(created, paid), nil
}

func (s *Service) afterCommit(ctx context.Context, snap catalog.Snapshot, o dbgen.Order, ev dbgen.DomainEvent) {
	if s.Audit != nil {
		s.Audit.Record(ctx, audit.Entry{
			StoreID:  snap.Store.ID,
			Action:   "create",
			Entity:   "order",
			EntityID: db.UUIDString(o.ID),
			Metadata: map[string]any{
				"totalCents":    o.TotalCents,
				"discountCents": o.DiscountCents,
				"promoCode":     o.PromoCode.String,
				"lines":         len(snap.Lines),
			},
		})
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, snap.Store.ID)
	}
	if s.Bus != nil && ev.ID.Valid {
		if err := s.Bus.Publish(ctx, ev); err != nil {
			s.Logger.Warn().Err(err).Str("topic", ev.Topic).Str("order_id", db.UUIDString(o.ID)).Msg("event publish failed")
		}
	}
}

func pricingLines(snap catalog.Snapshot) []pricing.Line {
	lines := make([]pricing.Line, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		p, _ := snap.Product(l.ProductID)
		lines = append(lines, pricing.Line{
			ProductID: db.UUIDString(l.ProductID),
			Qty:       l.Quantity,
			UnitPrice: p.PriceCents,
		})
	}
	return lines
}

func orderPayload(o dbgen.Order, snap catalog.Snapshot) map[string]any {
	items := make([]map[string]any, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, map[string]any{"productId": db.UUIDString(l.ProductID), "quantity": l.Quantity})
	}
	return map[string]any{
		"orderId":          db.UUIDString(o.ID),
		"storeId":          db.UUIDString(o.StoreID),
		"subtotalCents":    o.SubtotalCents,
		"discountCents":    o.DiscountCents,
		"platformFeeCents": o.PlatformFeeCents,
		"totalCents":       o.TotalCents,
		"currency":         o.Currency,
		"items":            items,
	}
}

func toOutput(o dbgen.Order, paid payment.Result) Output {
	out := Output{
		OrderID:          db.UUIDString(o.ID),
		Status:           o.Status,
		SubtotalCents:    o.SubtotalCents,
		TotalCents:       o.TotalCents,
		PlatformFeeCents: o.PlatformFeeCents,
		DiscountCents:    o.DiscountCents,
		PromoCode:        db.StringPtr(o.PromoCode),
		PaymentMode:      paid.Mode,
	}
	if out.PaymentMode == "" {
		out.PaymentMode = payment.ModeStub
	}
	return out
}

func result(err error) string {
	if err == nil {
		return "success"
	}
	switch common.KindOf(err) {
	case common.KindValidation:
		return "invalid"
	case common.KindNotFound:
		return "not_found"
	case common.KindConflict:
		return "conflict"
	case common.KindBusinessRule:
		return "rejected"
	default:
		return "error"
	}
}
