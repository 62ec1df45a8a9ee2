package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
)

// PromotionsTenantQuerier defines the generated queries used by PromotionsTenantRepo.
type PromotionsTenantQuerier interface {
	ListPromotions(ctx context.Context, storeID pgtype.UUID) ([]dbgen.Promotion, error)
	CreatePromotion(ctx context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error)
	UpdatePromotion(ctx context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error)
	DeletePromotion(ctx context.Context, arg dbgen.DeletePromotionParams) (int64, error)
}

// PromotionsTenantRepo ensures store scoping is applied to promotion management.
type PromotionsTenantRepo struct {
	Q PromotionsTenantQuerier
}

// List returns every promotion of the store.
func (r PromotionsTenantRepo) List(ctx context.Context) ([]dbgen.Promotion, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return r.Q.ListPromotions(ctx, sid)
}

// Get returns one promotion of the store or pgx.ErrNoRows.
func (r PromotionsTenantRepo) Get(ctx context.Context, id string) (dbgen.Promotion, error) {
	pid, err := parseID(id)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	all, err := r.List(ctx)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	for _, p := range all {
		if p.ID == pid {
			return p, nil
		}
	}
	return dbgen.Promotion{}, pgx.ErrNoRows
}

// Create inserts a promotion; the store id on arg is overwritten from context.
func (r PromotionsTenantRepo) Create(ctx context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	arg.StoreID = sid
	return r.Q.CreatePromotion(ctx, arg)
}

// Update replaces the mutable fields of a promotion.
func (r PromotionsTenantRepo) Update(ctx context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	arg.StoreID = sid
	return r.Q.UpdatePromotion(ctx, arg)
}

// Delete removes a promotion and reports whether a row matched.
func (r PromotionsTenantRepo) Delete(ctx context.Context, id string) (bool, error) {
	sid, err := tenantUUIDFromContext(ctx)
	if err != nil {
		return false, err
	}
	pid, err := parseID(id)
	if err != nil {
		return false, err
	}
	n, err := r.Q.DeletePromotion(ctx, dbgen.DeletePromotionParams{ID: pid, StoreID: sid})
	return n > 0, err
}
