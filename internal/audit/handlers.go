package audit

import (
	"net/http"

	"github.com/noah-isme/storefront-core/internal/common"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/repo"
)

// Handler exposes HTTP endpoints for working with audit events.
type Handler struct {
	Store Store
}

// List returns a paginated list of the store's audit events.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_NOT_CONFIGURED", "audit store not configured", nil)
		return
	}
	storeID, err := repo.StoreID(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
		return
	}
	limit := common.AtoiDefault(r.URL.Query().Get("limit"), 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := common.AtoiDefault(r.URL.Query().Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	rows, err := h.Store.ListAuditEvents(r.Context(), dbgen.ListAuditEventsParams{StoreID: storeID, Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_QUERY_FAILED", "unable to fetch audit events", nil)
		return
	}
	if rows == nil {
		rows = []dbgen.AuditEvent{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"auditEvents": rows})
}
