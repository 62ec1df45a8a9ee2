package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver("myrivo.app", []string{"localhost:3000"})

	require.Equal(t, Lookup{Type: LookupPlatform}, r.Resolve("myrivo.app"))
	require.Equal(t, Lookup{Type: LookupPlatform}, r.Resolve("www.myrivo.app"))
	require.Equal(t, Lookup{Type: LookupPlatform}, r.Resolve("localhost:3000"))
	require.Equal(t, Lookup{Type: LookupSlug, Key: "olive"}, r.Resolve("Olive.myrivo.app"))
	require.Equal(t, Lookup{Type: LookupSlug, Key: "olive"}, r.Resolve("olive.myrivo.app:443"))
	require.Equal(t, Lookup{Type: LookupDomain, Key: "athomeapothacary.com"}, r.Resolve("athomeapothacary.com"))
	require.Equal(t, Lookup{Type: LookupMissing}, r.Resolve("  "))
}

func TestSlug(t *testing.T) {
	require.Equal(t, "at-home-apothecary", NormalizeSlug("At Home Apothecary !!"))
	require.True(t, ValidSlug("tallow-shop"))
	require.False(t, ValidSlug("No"))
	require.False(t, ValidSlug("bad_slug"))
}

func TestMiddlewareInjectsStore(t *testing.T) {
	r := NewResolver("myrivo.app", nil)
	find := func(_ context.Context, l Lookup) (string, error) {
		if l.Type == LookupSlug && l.Key == "olive" {
			return "store-1", nil
		}
		return "", ErrStoreUnavailable
	}
	var got string
	h := r.Middleware(find)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		got, _ = From(req.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "olive.myrivo.app"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "store-1", got)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/storefront/products", nil)
	req.Host = "unknown.example.com"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "STORE_UNAVAILABLE")
}

func TestPrefixKey(t *testing.T) {
	require.Equal(t, "s1:products", PrefixKey("s1", "products"))
	require.Equal(t, "products", PrefixKey("", "products"))
}
