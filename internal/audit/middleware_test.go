package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

type recordedEntries struct {
	entries []Entry
}

func (r *recordedEntries) Record(_ context.Context, e Entry) {
	r.entries = append(r.entries, e)
}

func TestHTTPRecorderRecordsSuccessOnly(t *testing.T) {
	rec := &recordedEntries{}
	storeID := uuid.New()
	userID := uuid.NewString()

	status := http.StatusOK
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := tenant.With(r.Context(), storeID.String())
			ctx = common.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.With(HTTPRecorder{Service: rec}.Middleware(HTTPConfig{
		Action:        "update_status",
		Entity:        "order",
		EntityIDParam: "orderId",
	})).Patch("/orders/{orderId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})

	orderID := uuid.NewString()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/orders/"+orderID, nil))
	require.Len(t, rec.entries, 1)
	got := rec.entries[0]
	require.Equal(t, "update_status", got.Action)
	require.Equal(t, orderID, got.EntityID)
	require.Equal(t, userID, got.ActorUserID)
	require.Equal(t, [16]byte(storeID), got.StoreID.Bytes)

	status = http.StatusBadRequest
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/orders/"+orderID, nil))
	require.Len(t, rec.entries, 1)
}
