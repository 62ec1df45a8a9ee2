package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/auth"
	"github.com/noah-isme/storefront-core/internal/config"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/db/dbtest"
	"github.com/noah-isme/storefront-core/internal/payment"
	"github.com/noah-isme/storefront-core/internal/ratelimit"
)

type harness struct {
	mem     *dbtest.Memory
	store   dbgen.Store
	product dbgen.Product
	tokens  *auth.Tokens
	handler http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		CurrencyCode:       "USD",
		PlatformRootDomain: "shops.test",
		StorefrontCacheTTL: time.Minute,
		IdempotencyTTL:     time.Hour,
		RateLimitStrategy:  config.RateLimitSliding,
		CheckoutRateLimit:  10,
		CheckoutRateWindow: time.Minute,
		PreviewRateLimit:   10,
		PreviewRateWindow:  time.Minute,
		AuditEnabled:       true,
	}
}

func newHarness(t *testing.T, cfg *config.Config) harness {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	mem.AddDomain(store.ID, "shop.olive.test")
	product := mem.AddProduct(store.ID, "Canvas Tote", 1800, 25, "active")

	tokens, err := auth.NewTokens(auth.Config{Secret: "router-secret"})
	require.NoError(t, err)
	gateway, err := payment.NewStubGateway()
	require.NoError(t, err)

	handler := NewRouter(Components{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Queries:  mem.Querier(),
		Tx:       mem,
		Redis:    rdb,
		Limiter:  ratelimit.SlidingWindow{Client: rdb, Prefix: "test:"},
		Payments: gateway,
		Tokens:   tokens,
	})
	return harness{mem: mem, store: store, product: product, tokens: tokens, handler: handler}
}

func (h harness) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func (h harness) bearer(t *testing.T, role string) map[string]string {
	t.Helper()
	token, _, err := h.tokens.Issue(auth.Claims{
		UserID:  "7d1c1d9e-9a0e-4d55-8f0f-3c1b8f7e2a11",
		StoreID: db.UUIDString(h.store.ID),
		Role:    role,
	})
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func checkoutBody(h harness, qty int) map[string]any {
	return map[string]any{
		"storeSlug": "olive-shop",
		"email":     "Buyer@Example.com",
		"items": []map[string]any{
			{"productId": db.UUIDString(h.product.ID), "quantity": qty},
		},
	}
}

func TestRouterCheckoutFlow(t *testing.T) {
	h := newHarness(t, testConfig())

	rr := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 2), map[string]string{"Idempotency-Key": "cart-1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out struct {
		OrderID          string  `json:"orderId"`
		Status           string  `json:"status"`
		SubtotalCents    int64   `json:"subtotalCents"`
		TotalCents       int64   `json:"totalCents"`
		PlatformFeeCents int64   `json:"platformFeeCents"`
		PromoCode        *string `json:"promoCode"`
		PaymentMode      string  `json:"paymentMode"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Equal(t, "paid", out.Status)
	require.EqualValues(t, 3600, out.SubtotalCents)
	require.EqualValues(t, 3600, out.TotalCents)
	require.EqualValues(t, 72, out.PlatformFeeCents)
	require.Nil(t, out.PromoCode)
	require.Equal(t, "stub", out.PaymentMode)
	require.EqualValues(t, 23, h.mem.Product(h.product.ID).InventoryQty)

	replay := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 2), map[string]string{"Idempotency-Key": "cart-1"})
	require.Equal(t, http.StatusConflict, replay.Code)
	require.Len(t, h.mem.Orders(), 1)

	listing := h.do(t, http.MethodGet, "/api/v1/storefront/olive-shop/products", nil, nil)
	require.Equal(t, http.StatusOK, listing.Code)
	var storefront struct {
		Products []struct {
			InventoryQty int32 `json:"inventoryQty"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(listing.Body.Bytes(), &storefront))
	require.Len(t, storefront.Products, 1)
	require.EqualValues(t, 23, storefront.Products[0].InventoryQty)

	orders := h.do(t, http.MethodGet, "/api/v1/orders", nil, h.bearer(t, ""))
	require.Equal(t, http.StatusOK, orders.Code)
	require.Contains(t, orders.Body.String(), out.OrderID)

	patched := h.do(t, http.MethodPatch, "/api/v1/orders/"+out.OrderID, map[string]any{"fulfillmentStatus": "processing"}, h.bearer(t, ""))
	require.Equal(t, http.StatusOK, patched.Code, patched.Body.String())

	var updates int
	for _, ev := range h.mem.AuditEvents() {
		if ev.Action == "update" && ev.Entity == "order" {
			updates++
		}
	}
	require.Equal(t, 1, updates)
}

func TestRouterCheckoutValidationAndInventory(t *testing.T) {
	h := newHarness(t, testConfig())

	bad := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 0), nil)
	require.Equal(t, http.StatusBadRequest, bad.Code)

	tooMany := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 30), nil)
	require.Equal(t, http.StatusBadRequest, tooMany.Code)
	require.Contains(t, tooMany.Body.String(), "INSUFFICIENT_INVENTORY")
	require.Empty(t, h.mem.Orders())
}

func TestRouterMerchantInventory(t *testing.T) {
	h := newHarness(t, testConfig())

	unauth := h.do(t, http.MethodPost, "/api/v1/inventory/adjust", map[string]any{}, nil)
	require.Equal(t, http.StatusUnauthorized, unauth.Code)

	body := map[string]any{"productId": db.UUIDString(h.product.ID), "deltaQty": 5, "reason": "restock"}
	rr := h.do(t, http.MethodPost, "/api/v1/inventory/adjust", body, h.bearer(t, "staff"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.EqualValues(t, 30, h.mem.Product(h.product.ID).InventoryQty)

	movements := h.do(t, http.MethodGet, "/api/v1/inventory/movements", nil, h.bearer(t, "staff"))
	require.Equal(t, http.StatusOK, movements.Code)
	require.Contains(t, movements.Body.String(), "restock")

	promo := map[string]any{"code": "spring10", "discountType": "percent", "discountValue": 10}
	forbidden := h.do(t, http.MethodPost, "/api/v1/promotions", promo, h.bearer(t, "staff"))
	require.Equal(t, http.StatusForbidden, forbidden.Code)
}

func TestRouterStorefrontByHost(t *testing.T) {
	h := newHarness(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "olive-shop.shops.test"
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Canvas Tote")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "shop.olive.test"
	rr = httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "shops.test"
	rr = httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterRateLimitsCheckout(t *testing.T) {
	cfg := testConfig()
	cfg.CheckoutRateLimit = 1
	h := newHarness(t, cfg)

	first := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 1), nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 1), nil)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.EqualValues(t, 24, h.mem.Product(h.product.ID).InventoryQty)
}

func TestRouterHealthLive(t *testing.T) {
	h := newHarness(t, testConfig())
	rr := h.do(t, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterRejectsOversizedBody(t *testing.T) {
	h := newHarness(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/preview", bytes.NewReader(make([]byte, 2<<20)))
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouterIdempotencyKeyRetriesAndTenants(t *testing.T) {
	h := newHarness(t, testConfig())
	key := map[string]string{"Idempotency-Key": "1"}

	rejected := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 30), key)
	require.Equal(t, http.StatusBadRequest, rejected.Code)

	retried := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 2), key)
	require.Equal(t, http.StatusOK, retried.Code, retried.Body.String())

	other := h.mem.AddStore("other-shop", "active")
	tote := h.mem.AddProduct(other.ID, "Field Tote", 2400, 5, "active")
	body := map[string]any{
		"storeSlug": "other-shop",
		"email":     "someone@example.com",
		"items":     []map[string]any{{"productId": db.UUIDString(tote.ID), "quantity": 1}},
	}
	elsewhere := h.do(t, http.MethodPost, "/api/v1/orders/checkout", body, key)
	require.Equal(t, http.StatusOK, elsewhere.Code, elsewhere.Body.String())
	require.Len(t, h.mem.Orders(), 2)

	replay := h.do(t, http.MethodPost, "/api/v1/orders/checkout", checkoutBody(h, 2), key)
	require.Equal(t, http.StatusConflict, replay.Code)
	require.Contains(t, replay.Body.String(), "IDEMPOTENT_REPLAY")
}
