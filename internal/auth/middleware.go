package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/obs"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

// Middleware authenticates merchant requests. The store_id claim becomes
// the request tenant; every merchant query is scoped to it.
type Middleware struct {
	Tokens *Tokens
}

// RequireMerchant enforces a valid bearer token before executing the next handler.
func (m Middleware) RequireMerchant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Tokens == nil {
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "authentication not configured", nil)
			return
		}
		token := bearerToken(r)
		if token == "" {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}
		claims, err := m.Tokens.Verify(token)
		if err != nil {
			var appErr *common.AppError
			if errors.As(err, &appErr) {
				common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
				return
			}
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}
		if claims.StoreID == "" {
			common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
			return
		}

		ctx := common.WithUserID(r.Context(), claims.UserID)
		if claims.Role != "" {
			ctx = common.WithRole(ctx, claims.Role)
		}
		ctx = tenant.With(ctx, claims.StoreID)
		obs.AnnotateLogger(ctx, "user_id", claims.UserID)
		obs.AnnotateLogger(ctx, "store_id", claims.StoreID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
