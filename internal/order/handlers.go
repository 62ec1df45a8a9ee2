package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/storefront-core/internal/common"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/repo"
)

// Handler exposes merchant order endpoints. Financial fields are read only.
type Handler struct {
	Repo     repo.OrdersTenantRepo
	Validate *validator.Validate
}

type patchRequest struct {
	Status            *string `json:"status" validate:"omitempty,oneof=pending paid failed cancelled"`
	FulfillmentStatus *string `json:"fulfillmentStatus" validate:"omitempty,oneof=unfulfilled processing fulfilled shipped"`
}

// List returns the store's orders, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := common.ParsePagination(r, 20)
	rows, err := h.Repo.List(r.Context(), int32(p.PerPage), int32(p.Offset()))
	if err != nil {
		writeRepoError(w, err, "failed to list orders")
		return
	}
	if rows == nil {
		rows = []dbgen.Order{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"orders": rows, "pagination": p})
}

// Get returns one order with its items.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, items, err := h.Repo.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeRepoError(w, err, "failed to load order")
		return
	}
	if items == nil {
		items = []dbgen.ListOrderItemsByOrderRow{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"order": o, "items": items})
}

// Patch updates the payment and/or fulfillment status.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	if req.Status == nil && req.FulfillmentStatus == nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "status or fulfillmentStatus is required", nil)
		return
	}
	o, err := h.Repo.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status, req.FulfillmentStatus)
	if err != nil {
		writeRepoError(w, err, "failed to update order")
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"order": o})
}

func writeRepoError(w http.ResponseWriter, err error, message string) {
	switch {
	case repo.IsTenantError(err):
		common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
	case errors.Is(err, pgx.ErrNoRows):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
	case errors.Is(err, repo.ErrInvalidID):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid order id", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", message, nil)
	}
}
