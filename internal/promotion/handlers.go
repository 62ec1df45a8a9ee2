package promotion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/storefront-core/internal/audit"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/repo"
)

// StoreLookup resolves an active store by slug.
type StoreLookup interface {
	ActiveStoreBySlug(ctx context.Context, slug string) (dbgen.Store, error)
}

// Handler exposes promotion preview and merchant management endpoints.
type Handler struct {
	Svc      *Service
	Stores   StoreLookup
	Repo     repo.PromotionsTenantRepo
	Audit    audit.Recorder
	Validate *validator.Validate
}

type previewRequest struct {
	StoreSlug     string `json:"storeSlug" validate:"required,min=3"`
	PromoCode     string `json:"promoCode" validate:"required,min=3,max=40"`
	SubtotalCents int64  `json:"subtotalCents" validate:"min=0"`
}

type createRequest struct {
	Code             string     `json:"code" validate:"required,promocode"`
	DiscountType     string     `json:"discountType" validate:"required,oneof=percent fixed"`
	DiscountValue    int32      `json:"discountValue" validate:"required,gt=0"`
	MinSubtotalCents int64      `json:"minSubtotalCents" validate:"min=0"`
	MaxRedemptions   *int32     `json:"maxRedemptions" validate:"omitempty,gt=0"`
	StartsAt         *time.Time `json:"startsAt"`
	EndsAt           *time.Time `json:"endsAt"`
	IsActive         *bool      `json:"isActive"`
}

type updateRequest struct {
	DiscountType     *string    `json:"discountType" validate:"omitempty,oneof=percent fixed"`
	DiscountValue    *int32     `json:"discountValue" validate:"omitempty,gt=0"`
	MinSubtotalCents *int64     `json:"minSubtotalCents" validate:"omitempty,min=0"`
	MaxRedemptions   *int32     `json:"maxRedemptions" validate:"omitempty,gt=0"`
	ClearMaxRedeem   bool       `json:"clearMaxRedemptions"`
	StartsAt         *time.Time `json:"startsAt"`
	EndsAt           *time.Time `json:"endsAt"`
	IsActive         *bool      `json:"isActive"`
}

// Preview returns the simulated discount for a promo code without persisting state.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Stores == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion service not configured", nil)
		return
	}
	var req previewRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	req.StoreSlug = strings.TrimSpace(req.StoreSlug)
	req.PromoCode = strings.TrimSpace(req.PromoCode)
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	store, err := h.Stores.ActiveStoreBySlug(r.Context(), req.StoreSlug)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	result, err := h.Svc.Preview(r.Context(), store.ID, req.PromoCode, req.SubtotalCents)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// List returns every promotion of the merchant's store.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "failed to list promotions")
		return
	}
	if rows == nil {
		rows = []dbgen.Promotion{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"promotions": rows})
}

// Create inserts a new promotion.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Repo.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion queries not configured", nil)
		return
	}
	var req createRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := checkWindow(req.StartsAt, req.EndsAt); err != nil {
		common.WriteError(w, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	created, err := h.Repo.Create(r.Context(), dbgen.CreatePromotionParams{
		Upper:            NormalizeCode(req.Code),
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		MinSubtotalCents: req.MinSubtotalCents,
		MaxRedemptions:   db.Int4Ptr(req.MaxRedemptions),
		StartsAt:         db.Timestamptz(req.StartsAt),
		EndsAt:           db.Timestamptz(req.EndsAt),
		IsActive:         active,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			common.JSONError(w, http.StatusConflict, "PROMOTION_EXISTS", "Promo code already exists", nil)
			return
		}
		writeRepoError(w, err, "failed to create promotion")
		return
	}
	h.record(r, created, "create")
	common.JSON(w, http.StatusCreated, map[string]any{"promotion": created})
}

// Update applies a partial update to an existing promotion.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Repo.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion queries not configured", nil)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "promotionId"))
	var req updateRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	existing, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "failed to load promotion")
		return
	}
	params := mergeUpdate(existing, req)
	if err := checkWindow(db.TimePtr(params.StartsAt), db.TimePtr(params.EndsAt)); err != nil {
		common.WriteError(w, err)
		return
	}
	updated, err := h.Repo.Update(r.Context(), params)
	if err != nil {
		writeRepoError(w, err, "failed to update promotion")
		return
	}
	h.record(r, updated, "update")
	common.JSON(w, http.StatusOK, map[string]any{"promotion": updated})
}

// Delete removes a promotion.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Repo.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promotion queries not configured", nil)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "promotionId"))
	existing, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "failed to load promotion")
		return
	}
	deleted, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "failed to delete promotion")
		return
	}
	if !deleted {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "promotion not found", nil)
		return
	}
	h.record(r, existing, "delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) record(r *http.Request, p dbgen.Promotion, action string) {
	if h.Audit == nil {
		return
	}
	userID, _ := common.UserID(r.Context())
	h.Audit.Record(r.Context(), audit.Entry{
		StoreID:     p.StoreID,
		ActorUserID: userID,
		Action:      action,
		Entity:      "promotion",
		EntityID:    db.UUIDString(p.ID),
		Metadata: map[string]any{
			"code":          p.Code,
			"discountType":  p.DiscountType,
			"discountValue": p.DiscountValue,
			"isActive":      p.IsActive,
		},
	})
}

func mergeUpdate(existing dbgen.Promotion, req updateRequest) dbgen.UpdatePromotionParams {
	params := dbgen.UpdatePromotionParams{
		ID:               existing.ID,
		StoreID:          existing.StoreID,
		DiscountType:     existing.DiscountType,
		DiscountValue:    existing.DiscountValue,
		MinSubtotalCents: existing.MinSubtotalCents,
		MaxRedemptions:   existing.MaxRedemptions,
		StartsAt:         existing.StartsAt,
		EndsAt:           existing.EndsAt,
		IsActive:         existing.IsActive,
	}
	if req.DiscountType != nil {
		params.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		params.DiscountValue = *req.DiscountValue
	}
	if req.MinSubtotalCents != nil {
		params.MinSubtotalCents = *req.MinSubtotalCents
	}
	if req.ClearMaxRedeem {
		params.MaxRedemptions = pgtype.Int4{}
	} else if req.MaxRedemptions != nil {
		params.MaxRedemptions = db.Int4Ptr(req.MaxRedemptions)
	}
	if req.StartsAt != nil {
		params.StartsAt = db.Timestamptz(req.StartsAt)
	}
	if req.EndsAt != nil {
		params.EndsAt = db.Timestamptz(req.EndsAt)
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	return params
}

func checkWindow(starts, ends *time.Time) error {
	if starts != nil && ends != nil && ends.Before(*starts) {
		return common.Validation("VALIDATION_FAILED", "endsAt must not be before startsAt")
	}
	return nil
}

func writeRepoError(w http.ResponseWriter, err error, message string) {
	switch {
	case repo.IsTenantError(err):
		common.JSONError(w, http.StatusForbidden, "STORE_REQUIRED", "no store bound to this account", nil)
	case errors.Is(err, pgx.ErrNoRows):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "promotion not found", nil)
	case errors.Is(err, repo.ErrInvalidID):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid promotion id", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", message, nil)
	}
}
