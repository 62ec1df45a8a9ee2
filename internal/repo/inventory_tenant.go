package repo

import (
	"context"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
)

// MovementsTenantQuerier defines the generated queries used by MovementsTenantRepo.
type MovementsTenantQuerier interface {
	ListInventoryMovements(ctx context.Context, arg dbgen.ListInventoryMovementsParams) ([]dbgen.ListInventoryMovementsRow, error)
}

// MovementsTenantRepo reads the store's inventory ledger.
type MovementsTenantRepo struct {
	Q MovementsTenantQuerier
}

// Latest returns the newest ledger rows with product titles.
func (r MovementsTenantRepo) Latest(ctx context.Context, limit int32) ([]dbgen.ListInventoryMovementsRow, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return r.Q.ListInventoryMovements(ctx, dbgen.ListInventoryMovementsParams{StoreID: sid, Limit: limit})
}
