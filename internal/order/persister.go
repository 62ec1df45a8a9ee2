package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/payment"
	"github.com/noah-isme/storefront-core/internal/pricing"
)

// Order statuses.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Fulfillment statuses.
const (
	FulfillmentUnfulfilled = "unfulfilled"
	FulfillmentProcessing  = "processing"
	FulfillmentFulfilled   = "fulfilled"
	FulfillmentShipped     = "shipped"
)

// Querier captures the inserts performed when an order is created.
type Querier interface {
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error
}

// Input is everything needed to persist a checkout.
type Input struct {
	Snapshot      catalog.Snapshot
	CustomerEmail string
	Currency      string
	Totals        pricing.Totals
	PromoCode     string
	Payment       payment.Result
}

// Persister writes the order header and its items.
type Persister struct{}

// Create inserts the order and one item per snapshot line, priced at the
// snapshot unit price. q must be bound to the checkout transaction.
func (Persister) Create(ctx context.Context, q Querier, in Input) (dbgen.Order, error) {
	status := StatusFailed
	if in.Payment.Paid() {
		status = StatusPaid
	}
	currency := in.Currency
	if currency == "" {
		currency = in.Snapshot.Store.Currency
	}
	o, err := q.CreateOrder(ctx, dbgen.CreateOrderParams{
		StoreID:          in.Snapshot.Store.ID,
		CustomerEmail:    strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		Currency:         currency,
		SubtotalCents:    in.Totals.Subtotal,
		DiscountCents:    in.Totals.Discount,
		TotalCents:       in.Totals.Total,
		Status:           status,
		PlatformFeeBps:   int32(in.Totals.FeeBps),
		PlatformFeeCents: in.Totals.PlatformFee,
		PromoCode:        db.Text(in.PromoCode),
		PaymentReference: in.Payment.Reference,
	})
	if err != nil {
		return dbgen.Order{}, common.Upstream(fmt.Errorf("create order: %w", err))
	}
	for _, line := range in.Snapshot.Lines {
		p, ok := in.Snapshot.Product(line.ProductID)
		if !ok {
			return dbgen.Order{}, catalog.ProductUnavailable(db.UUIDString(line.ProductID))
		}
		if err := q.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			OrderID:        o.ID,
			StoreID:        o.StoreID,
			ProductID:      line.ProductID,
			Quantity:       int32(line.Quantity),
			UnitPriceCents: p.PriceCents,
		}); err != nil {
			return dbgen.Order{}, common.Upstream(fmt.Errorf("create order item: %w", err))
		}
	}
	return o, nil
}
