package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

// Querier captures the generated queries the catalog reads from.
type Querier interface {
	GetActiveStoreBySlug(ctx context.Context, slug string) (dbgen.Store, error)
	GetActiveStoreByDomain(ctx context.Context, lower string) (dbgen.Store, error)
	GetStoreByID(ctx context.Context, id pgtype.UUID) (dbgen.Store, error)
	ListActiveProductsByIDs(ctx context.Context, arg dbgen.ListActiveProductsByIDsParams) ([]dbgen.ListActiveProductsByIDsRow, error)
	ListStorefrontProducts(ctx context.Context, storeID pgtype.UUID) ([]dbgen.ListStorefrontProductsRow, error)
}

// Item is one requested cart line before aggregation.
type Item struct {
	ProductID string
	Quantity  int
}

// Line is an aggregated cart line. Lines are ordered by product id.
type Line struct {
	ProductID pgtype.UUID
	Quantity  int
}

// Product is the point-in-time view of a product used by checkout.
type Product struct {
	ID           pgtype.UUID
	Title        string
	PriceCents   int64
	InventoryQty int32
}

// Snapshot is everything checkout reads before writing.
type Snapshot struct {
	Store    dbgen.Store
	Products map[[16]byte]Product
	Lines    []Line
}

// Product returns the snapshot row for id.
func (s Snapshot) Product(id pgtype.UUID) (Product, bool) {
	p, ok := s.Products[id.Bytes]
	return p, ok
}

// StoreUnavailable is returned when the store is missing or not active.
func StoreUnavailable() *common.AppError {
	return common.NotFound("STORE_UNAVAILABLE", "Store not found or inactive.")
}

// ProductUnavailable names the product that is missing, inactive or owned by another store.
func ProductUnavailable(id string) *common.AppError {
	return common.NotFound("PRODUCT_UNAVAILABLE", fmt.Sprintf("Product %s is unavailable.", id)).
		WithDetails(map[string]any{"productId": id})
}

// Aggregate merges duplicate product ids by summing quantities and orders
// the result by product id.
func Aggregate(items []Item) ([]Line, error) {
	if len(items) == 0 {
		return nil, common.Validation("VALIDATION_FAILED", "at least one item is required")
	}
	totals := make(map[[16]byte]int, len(items))
	for _, it := range items {
		id, err := db.ParseUUID(it.ProductID)
		if err != nil {
			return nil, common.Validation("VALIDATION_FAILED", fmt.Sprintf("invalid product id %q", it.ProductID))
		}
		if it.Quantity <= 0 {
			return nil, common.Validation("VALIDATION_FAILED", "quantity must be positive")
		}
		totals[id.Bytes] += it.Quantity
	}
	lines := make([]Line, 0, len(totals))
	for id, qty := range totals {
		lines = append(lines, Line{ProductID: pgtype.UUID{Bytes: id, Valid: true}, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].ProductID.Bytes[:], lines[j].ProductID.Bytes[:]) < 0
	})
	return lines, nil
}

// Reader loads stores and product snapshots.
type Reader struct {
	Q Querier
}

// ActiveStoreBySlug returns the active store with slug or StoreUnavailable.
func (r Reader) ActiveStoreBySlug(ctx context.Context, slug string) (dbgen.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !tenant.ValidSlug(slug) {
		return dbgen.Store{}, StoreUnavailable()
	}
	store, err := r.Q.GetActiveStoreBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Store{}, StoreUnavailable()
		}
		return dbgen.Store{}, common.Upstream(fmt.Errorf("load store: %w", err))
	}
	return store, nil
}

// FindStore resolves a host lookup for the tenant middleware.
func (r Reader) FindStore(ctx context.Context, l tenant.Lookup) (string, error) {
	var (
		store dbgen.Store
		err   error
	)
	switch l.Type {
	case tenant.LookupSlug:
		store, err = r.ActiveStoreBySlug(ctx, l.Key)
		if common.KindOf(err) == common.KindNotFound {
			return "", tenant.ErrStoreUnavailable
		}
	case tenant.LookupDomain:
		store, err = r.Q.GetActiveStoreByDomain(ctx, l.Key)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", tenant.ErrStoreUnavailable
		}
	default:
		return "", tenant.ErrStoreUnavailable
	}
	if err != nil {
		return "", common.Upstream(fmt.Errorf("resolve store: %w", err))
	}
	return db.UUIDString(store.ID), nil
}

// Load resolves the store, aggregates items and reads every referenced product
// in one query. Any product that is not active in this store fails the load.
func (r Reader) Load(ctx context.Context, storeSlug string, items []Item) (Snapshot, error) {
	store, err := r.ActiveStoreBySlug(ctx, storeSlug)
	if err != nil {
		return Snapshot{}, err
	}
	lines, err := Aggregate(items)
	if err != nil {
		return Snapshot{}, err
	}
	ids := make([]pgtype.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	rows, err := r.Q.ListActiveProductsByIDs(ctx, dbgen.ListActiveProductsByIDsParams{StoreID: store.ID, Ids: ids})
	if err != nil {
		return Snapshot{}, common.Upstream(fmt.Errorf("load products: %w", err))
	}
	products := make(map[[16]byte]Product, len(rows))
	for _, row := range rows {
		products[row.ID.Bytes] = Product{ID: row.ID, Title: row.Title, PriceCents: row.PriceCents, InventoryQty: row.InventoryQty}
	}
	for _, l := range lines {
		if _, ok := products[l.ProductID.Bytes]; !ok {
			return Snapshot{}, ProductUnavailable(db.UUIDString(l.ProductID))
		}
	}
	return Snapshot{Store: store, Products: products, Lines: lines}, nil
}
