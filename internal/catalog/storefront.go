package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/pricing"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

// StoreSummary is the public part of a store.
type StoreSummary struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// StorefrontProduct is a product as shown to shoppers.
type StorefrontProduct struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Sku          *string `json:"sku,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	PriceCents   int64   `json:"priceCents"`
	Price        string  `json:"price"`
	InventoryQty int32   `json:"inventoryQty"`
	InStock      bool    `json:"inStock"`
}

// Storefront is the cached payload for one store.
type Storefront struct {
	Store    StoreSummary        `json:"store"`
	Products []StorefrontProduct `json:"products"`
}

// Service serves storefront listings with a Redis read-through cache.
type Service struct {
	Reader Reader
	Cache  *Cache
	Logger zerolog.Logger
}

func storefrontKey(storeID string) string {
	return tenant.PrefixKey(storeID, "storefront:products")
}

// BySlug returns the storefront of the active store with slug.
func (s *Service) BySlug(ctx context.Context, slug string) (Storefront, error) {
	store, err := s.Reader.ActiveStoreBySlug(ctx, slug)
	if err != nil {
		return Storefront{}, err
	}
	return s.load(ctx, store)
}

// ByID returns the storefront of an active store resolved earlier, e.g. from the Host header.
func (s *Service) ByID(ctx context.Context, storeID pgtype.UUID) (Storefront, error) {
	var cached Storefront
	if ok, err := s.Cache.GetJSON(ctx, storefrontKey(db.UUIDString(storeID)), &cached); err == nil && ok {
		return cached, nil
	}
	store, err := s.Reader.Q.GetStoreByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Storefront{}, StoreUnavailable()
		}
		return Storefront{}, common.Upstream(fmt.Errorf("load store: %w", err))
	}
	if store.Status != "active" {
		return Storefront{}, StoreUnavailable()
	}
	return s.load(ctx, store)
}

// Invalidate drops the cached listing of a store after stock or price changes.
func (s *Service) Invalidate(ctx context.Context, storeID pgtype.UUID) {
	if err := s.Cache.Delete(ctx, storefrontKey(db.UUIDString(storeID))); err != nil {
		s.Logger.Warn().Err(err).Str("store_id", db.UUIDString(storeID)).Msg("storefront cache invalidation failed")
	}
}

func (s *Service) load(ctx context.Context, store dbgen.Store) (Storefront, error) {
	key := storefrontKey(db.UUIDString(store.ID))
	var cached Storefront
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("storefront cache read failed")
	} else if ok {
		return cached, nil
	}

	rows, err := s.Reader.Q.ListStorefrontProducts(ctx, store.ID)
	if err != nil {
		return Storefront{}, common.Upstream(fmt.Errorf("list storefront products: %w", err))
	}
	out := Storefront{
		Store: StoreSummary{
			ID:       db.UUIDString(store.ID),
			Slug:     store.Slug,
			Name:     store.Name,
			Currency: store.Currency,
		},
		Products: make([]StorefrontProduct, 0, len(rows)),
	}
	for _, row := range rows {
		out.Products = append(out.Products, StorefrontProduct{
			ID:           db.UUIDString(row.ID),
			Title:        row.Title,
			Description:  row.Description,
			Sku:          db.StringPtr(row.Sku),
			ImageURL:     db.StringPtr(row.ImageUrl),
			PriceCents:   row.PriceCents,
			Price:        pricing.FormatCents(row.PriceCents),
			InventoryQty: row.InventoryQty,
			InStock:      row.InventoryQty > 0,
		})
	}
	if err := s.Cache.SetJSON(ctx, key, out); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("storefront cache write failed")
	}
	return out, nil
}
