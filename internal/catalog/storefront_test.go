package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/db"
	"github.com/noah-isme/storefront-core/internal/db/dbtest"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

func newStorefront(t *testing.T) (*catalog.Service, *dbtest.Memory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mem := dbtest.New()
	svc := &catalog.Service{
		Reader: catalog.Reader{Q: mem.Querier()},
		Cache:  catalog.NewCache(rdb, time.Minute),
		Logger: zerolog.Nop(),
	}
	return svc, mem, mr
}

func TestStorefrontBySlugCaches(t *testing.T) {
	svc, mem, mr := newStorefront(t)
	store := mem.AddStore("olive-shop", "active")
	soap := mem.AddProduct(store.ID, "Tallow Soap", 1800, 25, "active")
	mem.AddProduct(store.ID, "Hidden", 500, 1, "archived")

	out, err := svc.BySlug(context.Background(), "olive-shop")
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	require.Equal(t, "$18.00", out.Products[0].Price)
	require.True(t, out.Products[0].InStock)
	require.True(t, mr.Exists(db.UUIDString(store.ID)+":storefront:products"))

	// cached copy survives a change until invalidated
	_, err = mem.Querier().AdjustProductInventory(context.Background(), adjustParams(store, soap, -25))
	require.NoError(t, err)
	out, err = svc.BySlug(context.Background(), "olive-shop")
	require.NoError(t, err)
	require.EqualValues(t, 25, out.Products[0].InventoryQty)

	svc.Invalidate(context.Background(), store.ID)
	out, err = svc.BySlug(context.Background(), "olive-shop")
	require.NoError(t, err)
	require.EqualValues(t, 0, out.Products[0].InventoryQty)
	require.False(t, out.Products[0].InStock)
}

func TestStorefrontHandlers(t *testing.T) {
	svc, mem, _ := newStorefront(t)
	store := mem.AddStore("olive-shop", "active")
	mem.AddProduct(store.ID, "Tallow Soap", 1800, 25, "active")
	mem.AddDomain(store.ID, "shop.olive.com")

	h := catalog.NewHandler(catalog.HandlerConfig{Service: svc})
	resolver := tenant.NewResolver("myrivo.app", nil)
	reader := catalog.Reader{Q: mem.Querier()}

	r := chi.NewRouter()
	r.Get("/api/v1/storefront/{slug}/products", h.BySlug)
	r.With(resolver.Middleware(reader.FindStore)).Get("/api/v1/storefront/products", h.ByHost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/storefront/olive-shop/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body catalog.Storefront
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "olive-shop", body.Store.Slug)
	require.Len(t, body.Products, 1)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/storefront/no-such-shop/products", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	for _, host := range []string{"olive-shop.myrivo.app", "shop.olive.com"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
		req.Host = host
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, host)
		require.Contains(t, rec.Body.String(), "Tallow Soap")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "myrivo.app"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
