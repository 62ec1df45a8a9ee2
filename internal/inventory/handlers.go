package inventory

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/storefront-core/internal/common"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/repo"
)

// Handler exposes merchant inventory endpoints.
type Handler struct {
	Svc       *Service
	Movements repo.MovementsTenantRepo
	Validate  *validator.Validate
}

type adjustRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	DeltaQty  int32  `json:"deltaQty" validate:"required,min=-100000,max=100000"`
	Reason    string `json:"reason" validate:"required,oneof=restock adjustment"`
	Note      string `json:"note" validate:"max=280"`
}

// Adjust applies a manual stock change to one of the merchant's products.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory service not configured", nil)
		return
	}
	storeID, err := repo.StoreID(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
		return
	}
	var req adjustRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	actor, _ := common.UserID(r.Context())
	product, err := h.Svc.Adjust(r.Context(), storeID, AdjustInput{
		ProductID:   req.ProductID,
		DeltaQty:    req.DeltaQty,
		Reason:      req.Reason,
		Note:        req.Note,
		ActorUserID: actor,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"product": product})
}

// ListMovements lists the latest ledger rows for the merchant's store.
func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit := common.AtoiDefault(r.URL.Query().Get("limit"), 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := h.Movements.Latest(r.Context(), int32(limit))
	if err != nil {
		if repo.IsTenantError(err) {
			common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list movements", nil)
		return
	}
	if rows == nil {
		rows = []dbgen.ListInventoryMovementsRow{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"movements": rows})
}
