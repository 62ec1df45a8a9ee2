package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

// RequireTenant rejects merchant requests whose context carries no well-formed store id.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := tenant.From(r.Context())
		if !ok {
			common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
			return
		}
		if _, err := uuid.Parse(storeID); err != nil {
			common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows the request when the caller's role is one of roles.
// Tokens without a role claim are treated as owners.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := common.Role(r.Context())
			if role == "" {
				role = "owner"
			}
			if _, ok := allowed[role]; !ok {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
