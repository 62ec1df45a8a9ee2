package common

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorUsesAppErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Conflict("INVENTORY_CONFLICT", "stock changed"))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":{"code":"INVENTORY_CONFLICT","message":"stock changed"}}`, rec.Body.String())
}

func TestWriteErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: connection refused on 10.0.0.3"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "10.0.0.3")
	require.Contains(t, rec.Body.String(), `"INTERNAL"`)
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindValidation, KindOf(Validation("X", "x")))
	require.Equal(t, KindNotFound, KindOf(NotFound("X", "x")))
	require.Equal(t, KindBusinessRule, KindOf(BusinessRule("X", "x")))
	require.Equal(t, KindUpstream, KindOf(errors.New("boom")))
	require.Equal(t, KindConflict, KindOf(NewAppError("X", "x", http.StatusConflict, nil)))

	wrapped := Upstream(errors.New("db down"))
	require.Equal(t, "INTERNAL", CodeOf(wrapped))
	require.ErrorContains(t, wrapped, "db down")
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	p := ParsePagination(r, 20)
	require.Equal(t, 3, p.Page)
	require.Equal(t, maxPerPage, p.PerPage)
	require.Equal(t, 200, p.Offset())
}

func TestIdemRejectsReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	h := Idem{R: rdb, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", nil)
		req.Header.Set("Idempotency-Key", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusCreated, send())
	require.Equal(t, http.StatusConflict, send())
	require.Equal(t, 1, calls)
}

func TestIdemReleasesKeyOnServerError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	status := http.StatusInternalServerError
	h := Idem{R: rdb, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("Idempotency-Key", "retry-me")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusInternalServerError, send())
	status = http.StatusOK
	require.Equal(t, http.StatusOK, send())
}

func TestIdemReleasesKeyOnConflict(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	status := http.StatusConflict
	h := Idem{R: rdb, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(status)
	}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("Idempotency-Key", "stock-race")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusConflict, send())
	require.Empty(t, mr.Keys())
	status = http.StatusOK
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, 2, calls)
	require.Len(t, mr.Keys(), 1)
}

func TestIdemScopesKeysByStoreAndClient(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var seen []string
	h := Idem{R: rdb, TTL: time.Minute, Scope: StoreAndClientScope("storeSlug")}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	send := func(body, ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "1")
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	olive := `{"storeSlug":"olive-shop"}`
	other := `{"storeSlug":"other-shop"}`
	require.Equal(t, http.StatusOK, send(olive, "10.0.0.1"))
	require.Equal(t, http.StatusOK, send(other, "10.0.0.1"))
	require.Equal(t, http.StatusOK, send(olive, "10.0.0.2"))
	require.Equal(t, http.StatusConflict, send(` {"storeSlug":"Olive-Shop"}`, "10.0.0.1"))
	require.Equal(t, []string{olive, other, olive}, seen)
}

func TestValidateStructReportsFields(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"promoCode" validate:"omitempty,promocode"`
		Items []struct {
			Quantity int `json:"quantity" validate:"min=1,max=99"`
		} `json:"items" validate:"required,min=1,dive"`
	}
	v := NewValidator()

	p := payload{Email: "nope", Code: "no spaces"}
	err := ValidateStruct(v, p)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, KindValidation, appErr.Kind)
	details := appErr.Details.(map[string]string)
	require.Equal(t, "email", details["email"])
	require.Equal(t, "promocode", details["promoCode"])
	require.Equal(t, "required", details["items"])

	p = payload{Email: "shopper@example.com", Code: "SAVE_10"}
	p.Items = append(p.Items, struct {
		Quantity int `json:"quantity" validate:"min=1,max=99"`
	}{Quantity: 2})
	require.NoError(t, ValidateStruct(v, p))
}
