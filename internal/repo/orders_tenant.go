package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
)

// OrdersTenantQuerier defines the generated queries used by OrdersTenantRepo.
type OrdersTenantQuerier interface {
	ListOrdersByStore(ctx context.Context, arg dbgen.ListOrdersByStoreParams) ([]dbgen.Order, error)
	GetOrderByStore(ctx context.Context, arg dbgen.GetOrderByStoreParams) (dbgen.Order, error)
	ListOrderItemsByOrder(ctx context.Context, arg dbgen.ListOrderItemsByOrderParams) ([]dbgen.ListOrderItemsByOrderRow, error)
	UpdateOrderStatus(ctx context.Context, arg dbgen.UpdateOrderStatusParams) (dbgen.Order, error)
}

// OrdersTenantRepo ensures store scoping is applied to order queries.
type OrdersTenantRepo struct {
	Q OrdersTenantQuerier
}

// List returns the store's orders, newest first.
func (r OrdersTenantRepo) List(ctx context.Context, limit, offset int32) ([]dbgen.Order, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return r.Q.ListOrdersByStore(ctx, dbgen.ListOrdersByStoreParams{StoreID: sid, Limit: limit, Offset: offset})
}

// Get returns a store scoped order with its items.
func (r OrdersTenantRepo) Get(ctx context.Context, id string) (dbgen.Order, []dbgen.ListOrderItemsByOrderRow, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return dbgen.Order{}, nil, err
	}
	orderID, err := parseID(id)
	if err != nil {
		return dbgen.Order{}, nil, err
	}
	order, err := r.Q.GetOrderByStore(ctx, dbgen.GetOrderByStoreParams{ID: orderID, StoreID: sid})
	if err != nil {
		return dbgen.Order{}, nil, err
	}
	items, err := r.Q.ListOrderItemsByOrder(ctx, dbgen.ListOrderItemsByOrderParams{OrderID: orderID, StoreID: sid})
	if err != nil {
		return dbgen.Order{}, nil, err
	}
	return order, items, nil
}

// UpdateStatus changes the payment and/or fulfillment status. Nil leaves a field unchanged.
func (r OrdersTenantRepo) UpdateStatus(ctx context.Context, id string, status, fulfillment *string) (dbgen.Order, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return dbgen.Order{}, err
	}
	orderID, err := parseID(id)
	if err != nil {
		return dbgen.Order{}, err
	}
	params := dbgen.UpdateOrderStatusParams{ID: orderID, StoreID: sid}
	if status != nil {
		params.Status = pgtype.Text{String: *status, Valid: true}
	}
	if fulfillment != nil {
		params.FulfillmentStatus = pgtype.Text{String: *fulfillment, Valid: true}
	}
	return r.Q.UpdateOrderStatus(ctx, params)
}
