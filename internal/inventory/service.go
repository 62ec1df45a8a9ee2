package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/audit"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/events"
	"github.com/noah-isme/storefront-core/internal/obs"
)

const maxNoteLength = 280

// Invalidator drops cached storefront data after stock changes.
type Invalidator interface {
	Invalidate(ctx context.Context, storeID pgtype.UUID)
}

// AdjustInput is a manual stock change requested by a merchant.
type AdjustInput struct {
	ProductID   string
	DeltaQty    int32
	Reason      string
	Note        string
	ActorUserID string
}

// Service applies merchant stock adjustments.
type Service struct {
	Tx     db.TxRunner
	Bus    *events.Bus
	Audit  audit.Recorder
	Cache  Invalidator
	Logger zerolog.Logger
}

// NegativeInventory is returned when an adjustment would leave stock below zero.
func NegativeInventory() *common.AppError {
	return &common.AppError{
		Kind:       common.KindBusinessRule,
		Code:       "NEGATIVE_INVENTORY",
		Message:    "Inventory adjustment cannot make stock negative.",
		HTTPStatus: http.StatusBadRequest,
		Err:        ErrNegative,
	}
}

func validateAdjust(in AdjustInput) (pgtype.UUID, error) {
	id, err := db.ParseUUID(in.ProductID)
	if err != nil {
		return pgtype.UUID{}, common.Validation("VALIDATION_FAILED", "productId must be a valid uuid")
	}
	if in.DeltaQty == 0 {
		return pgtype.UUID{}, common.Validation("VALIDATION_FAILED", "deltaQty must not be zero")
	}
	switch in.Reason {
	case ReasonRestock, ReasonAdjustment:
	default:
		return pgtype.UUID{}, common.Validation("VALIDATION_FAILED", "reason must be restock or adjustment")
	}
	if len([]rune(in.Note)) > maxNoteLength {
		return pgtype.UUID{}, common.Validation("VALIDATION_FAILED", "note must be at most 280 characters")
	}
	return id, nil
}

// Adjust changes a product's stock by DeltaQty inside one transaction and
// appends the matching movement. The update is guarded by the quantity read
// in the same transaction; a concurrent change yields a conflict.
func (s *Service) Adjust(ctx context.Context, storeID pgtype.UUID, in AdjustInput) (dbgen.Product, error) {
	if s == nil || s.Tx == nil {
		return dbgen.Product{}, errors.New("inventory service not configured")
	}
	in.Reason = strings.TrimSpace(in.Reason)
	in.Note = strings.TrimSpace(in.Note)
	productID, err := validateAdjust(in)
	if err != nil {
		return dbgen.Product{}, err
	}

	var (
		product dbgen.Product
		ev      dbgen.DomainEvent
		before  int32
	)
	err = s.Tx.WithinTx(ctx, func(q dbgen.Querier) error {
		current, err := q.GetProductInventory(ctx, dbgen.GetProductInventoryParams{ID: productID, StoreID: storeID})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.NotFound("PRODUCT_NOT_FOUND", "Product not found.")
			}
			return common.Upstream(fmt.Errorf("load product inventory: %w", err))
		}
		before = current.InventoryQty
		if int64(current.InventoryQty)+int64(in.DeltaQty) < 0 {
			return NegativeInventory().WithDetails(map[string]any{"available": current.InventoryQty})
		}
		product, err = q.AdjustProductInventory(ctx, dbgen.AdjustProductInventoryParams{
			Delta:       in.DeltaQty,
			ID:          productID,
			StoreID:     storeID,
			ExpectedQty: current.InventoryQty,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				obs.ObserveInventoryConflict()
				return Conflict()
			}
			return common.Upstream(fmt.Errorf("adjust inventory: %w", err))
		}
		if _, err := q.InsertInventoryMovement(ctx, dbgen.InsertInventoryMovementParams{
			StoreID:   storeID,
			ProductID: productID,
			DeltaQty:  in.DeltaQty,
			Reason:    in.Reason,
			Note:      db.Text(in.Note),
		}); err != nil {
			return common.Upstream(fmt.Errorf("record movement: %w", err))
		}
		if s.Bus != nil {
			ev, err = s.Bus.Emit(ctx, q, storeID, events.TopicInventoryAdjusted, productID, map[string]any{
				"productId":    db.UUIDString(productID),
				"deltaQty":     in.DeltaQty,
				"reason":       in.Reason,
				"inventoryQty": product.InventoryQty,
			})
			if err != nil {
				return common.Upstream(err)
			}
		}
		return nil
	})
	if err != nil {
		return dbgen.Product{}, err
	}

	obs.ObserveInventoryAdjustment(in.Reason)
	if s.Audit != nil {
		s.Audit.Record(ctx, audit.Entry{
			StoreID:     storeID,
			ActorUserID: in.ActorUserID,
			Action:      "adjust",
			Entity:      "inventory",
			EntityID:    db.UUIDString(productID),
			Metadata: map[string]any{
				"deltaQty": in.DeltaQty,
				"reason":   in.Reason,
				"before":   before,
				"after":    product.InventoryQty,
			},
		})
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, storeID)
	}
	if s.Bus != nil && ev.ID.Valid {
		if err := s.Bus.Publish(ctx, ev); err != nil {
			s.Logger.Warn().Err(err).Str("topic", ev.Topic).Msg("event publish failed")
		}
	}
	return product, nil
}
