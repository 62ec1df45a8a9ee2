package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/resilience"
)

// Guarded trips a breaker around a gateway so a failing provider is not
// called on every checkout. Declined charges count as successful calls.
type Guarded struct {
	Next    Gateway
	Breaker *resilience.Breaker
}

// Charge implements Gateway.
func (g Guarded) Charge(ctx context.Context, req Request) (Result, error) {
	if g.Breaker == nil {
		return g.Next.Charge(ctx, req)
	}
	var res Result
	err := g.Breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = g.Next.Charge(ctx, req)
		return err
	})
	if errors.Is(err, resilience.ErrOpenCircuit) {
		return Result{}, Unavailable()
	}
	return res, err
}

// Unavailable is returned while the provider breaker is open.
func Unavailable() *common.AppError {
	return &common.AppError{
		Kind:       common.KindUpstream,
		Code:       "PAYMENT_UNAVAILABLE",
		Message:    "Payments are temporarily unavailable. Please retry shortly.",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        resilience.ErrOpenCircuit,
	}
}
