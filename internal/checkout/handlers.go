package checkout

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/common"
)

// Handler exposes the public checkout endpoint.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type checkoutRequest struct {
	StoreSlug string        `json:"storeSlug" validate:"required,min=3"`
	Email     string        `json:"email" validate:"required,email"`
	PromoCode *string       `json:"promoCode" validate:"omitempty,min=3,max=40"`
	Items     []requestItem `json:"items" validate:"required,min=1,dive"`
}

type requestItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

// normalize trims input before validation. A blank promo code stays non-nil
// and fails min length.
func (req *checkoutRequest) normalize() {
	req.StoreSlug = strings.TrimSpace(req.StoreSlug)
	if req.PromoCode != nil {
		code := strings.TrimSpace(*req.PromoCode)
		req.PromoCode = &code
	}
}

// Checkout places an order for the request's cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var req checkoutRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	req.normalize()
	if err := common.ValidateStruct(h.Validate, req); err != nil {
		common.WriteError(w, err)
		return
	}
	items := make([]catalog.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, catalog.Item{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	in := Input{
		StoreSlug: req.StoreSlug,
		Email:     req.Email,
		Items:     items,
	}
	if req.PromoCode != nil {
		in.PromoCode = *req.PromoCode
	}
	out, err := h.Svc.Checkout(r.Context(), in)
	if err != nil {
		if common.KindOf(err) == common.KindUpstream {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("store_slug", req.StoreSlug).Msg("checkout failed")
		}
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, out)
}
