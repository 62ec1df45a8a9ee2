package promotion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/pricing"
)

// Reason returns the metric label for a rejection error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInactive):
		return "inactive"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrExhausted):
		return "exhausted"
	case errors.Is(err, ErrBelowMinimum):
		return "below_minimum"
	default:
		return "other"
	}
}

// rejection maps a rule error to the API error shown to shoppers.
// An unknown code is a missing entity but is rendered as a 400 like other rejections.
func rejection(err error, rule Rule) *common.AppError {
	var appErr *common.AppError
	switch {
	case errors.Is(err, ErrNotFound):
		appErr = &common.AppError{Kind: common.KindNotFound, Code: "PROMOTION_NOT_FOUND", Message: "Promo code is invalid or inactive.", HTTPStatus: http.StatusBadRequest}
	case errors.Is(err, ErrInactive):
		appErr = common.BusinessRule("PROMOTION_INACTIVE", "Promo code is inactive.")
	case errors.Is(err, ErrNotStarted):
		appErr = common.BusinessRule("PROMOTION_NOT_STARTED", "Promo code is not active yet.")
	case errors.Is(err, ErrExpired):
		appErr = common.BusinessRule("PROMOTION_EXPIRED", "Promo code has expired.")
	case errors.Is(err, ErrExhausted):
		appErr = common.BusinessRule("PROMOTION_EXHAUSTED", "Promo code redemption limit reached.")
	case errors.Is(err, ErrBelowMinimum):
		appErr = common.BusinessRule("PROMOTION_BELOW_MINIMUM", fmt.Sprintf("Promo requires minimum subtotal of %s.", pricing.FormatCents(rule.MinSubtotal)))
		appErr.Details = map[string]any{"minSubtotalCents": rule.MinSubtotal}
	default:
		return common.Upstream(err)
	}
	appErr.Err = err
	return appErr
}
