package payment

import (
	"context"

	"internship-marketplace/internal/domain/ports/adapter"
)

// NoopGateway returns a canned checkout URL; used with -dev so the flow can
// be exercised without gateway credentials.
type NoopGateway struct{}

func NewNoopGateway() *NoopGateway { return &NoopGateway{} }

func (g *NoopGateway) Name() string { return "noop" }

func (g *NoopGateway) InitializeTransaction(ctx context.Context, req adapter.TransactionRequest) (string, error) {
	return "https://checkout.invalid/" + req.TxRef, nil
}
