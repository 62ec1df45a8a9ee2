package payment

import (
	"context"
	"errors"
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Kind is the outcome of a payment attempt.
type Kind string

const (
	KindStubbed  Kind = "stubbed"
	KindCaptured Kind = "captured"
	KindFailed   Kind = "failed"
)

// Mode reported to clients for the stub gateway.
const ModeStub = "stub"

// Request is what checkout asks the gateway to charge.
type Request struct {
	StoreID       string
	CustomerEmail string
	AmountCents   int64
	Currency      string
}

// Result is the gateway's answer.
type Result struct {
	Kind      Kind
	Reference string
	Mode      string
	Reason    string
}

// Paid reports whether the order may be marked paid.
func (r Result) Paid() bool {
	return r.Kind == KindStubbed || r.Kind == KindCaptured
}

// Gateway charges customers.
type Gateway interface {
	Charge(ctx context.Context, req Request) (Result, error)
}

// StubGateway accepts every charge without contacting a provider.
type StubGateway struct {
	newID func() string
}

// NewStubGateway builds a stub whose references look like stub_pi_<15 chars>.
func NewStubGateway() (*StubGateway, error) {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("payment: id generator: %w", err)
	}
	return &StubGateway{newID: gen}, nil
}

// Charge implements Gateway.
func (g *StubGateway) Charge(ctx context.Context, req Request) (Result, error) {
	if g == nil || g.newID == nil {
		return Result{}, errors.New("payment: stub gateway not configured")
	}
	_, span := otel.Tracer("payment.StubGateway").Start(ctx, "StubGateway.Charge")
	defer span.End()
	if req.AmountCents < 0 {
		return Result{Kind: KindFailed, Mode: ModeStub, Reason: "negative amount"}, nil
	}
	ref := "stub_pi_" + g.newID()
	span.SetAttributes(
		attribute.String("payment.mode", ModeStub),
		attribute.Int64("payment.amount_cents", req.AmountCents),
	)
	return Result{Kind: KindStubbed, Reference: ref, Mode: ModeStub}, nil
}
