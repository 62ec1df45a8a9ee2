package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/obs"
)

// Movement reasons.
const (
	ReasonSale       = "sale"
	ReasonRestock    = "restock"
	ReasonAdjustment = "adjustment"
)

var (
	// ErrInsufficient means the snapshot quantity cannot cover the line.
	ErrInsufficient = errors.New("inventory: insufficient")
	// ErrConflict means the row changed since it was read.
	ErrConflict = errors.New("inventory: concurrent modification")
	// ErrNegative means an adjustment would take stock below zero.
	ErrNegative = errors.New("inventory: negative result")
)

// Querier captures the stock writes performed by checkout.
type Querier interface {
	DecrementProductInventory(ctx context.Context, arg dbgen.DecrementProductInventoryParams) (int64, error)
	InsertInventoryMovement(ctx context.Context, arg dbgen.InsertInventoryMovementParams) (dbgen.InventoryMovement, error)
}

// InsufficientInventory names the product and what was available at read time.
func InsufficientInventory(title string, available int32) *common.AppError {
	return &common.AppError{
		Kind:       common.KindBusinessRule,
		Code:       "INSUFFICIENT_INVENTORY",
		Message:    fmt.Sprintf("Insufficient inventory for %s. Available: %d", title, available),
		HTTPStatus: http.StatusBadRequest,
		Err:        ErrInsufficient,
		Details:    map[string]any{"productTitle": title, "available": available},
	}
}

// Conflict is returned when a compare-and-swap update matched no row.
func Conflict() *common.AppError {
	return &common.AppError{
		Kind:       common.KindConflict,
		Code:       "INVENTORY_CONFLICT",
		Message:    "Inventory changed during checkout. Please retry.",
		HTTPStatus: http.StatusConflict,
		Err:        ErrConflict,
	}
}

// Reconciler applies a checkout's stock changes. Every call is expected to
// run on a querier bound to the checkout transaction.
type Reconciler struct{}

// Reserve checks every line against the snapshot before writing anything, then
// decrements each product guarded by the quantity it had in the snapshot.
// Lines are processed in snapshot order, which is ascending product id.
func (Reconciler) Reserve(ctx context.Context, q Querier, snap catalog.Snapshot) error {
	for _, line := range snap.Lines {
		p, ok := snap.Product(line.ProductID)
		if !ok {
			return catalog.ProductUnavailable(db.UUIDString(line.ProductID))
		}
		if int(p.InventoryQty) < line.Quantity {
			return InsufficientInventory(p.Title, p.InventoryQty)
		}
	}
	for _, line := range snap.Lines {
		p, _ := snap.Product(line.ProductID)
		rows, err := q.DecrementProductInventory(ctx, dbgen.DecrementProductInventoryParams{
			Qty:         int32(line.Quantity),
			ID:          line.ProductID,
			StoreID:     snap.Store.ID,
			ExpectedQty: p.InventoryQty,
		})
		if err != nil {
			return common.Upstream(fmt.Errorf("decrement inventory: %w", err))
		}
		if rows == 0 {
			obs.ObserveInventoryConflict()
			return Conflict().WithDetails(map[string]any{"productId": db.UUIDString(line.ProductID)})
		}
	}
	return nil
}

// Record appends one sale movement per line, linked to the order.
func (Reconciler) Record(ctx context.Context, q Querier, snap catalog.Snapshot, orderID pgtype.UUID) error {
	for _, line := range snap.Lines {
		_, err := q.InsertInventoryMovement(ctx, dbgen.InsertInventoryMovementParams{
			StoreID:   snap.Store.ID,
			ProductID: line.ProductID,
			OrderID:   orderID,
			DeltaQty:  -int32(line.Quantity),
			Reason:    ReasonSale,
		})
		if err != nil {
			return common.Upstream(fmt.Errorf("record movement: %w", err))
		}
	}
	return nil
}
