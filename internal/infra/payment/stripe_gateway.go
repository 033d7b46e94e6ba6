package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/ports/adapter"
	"internship-marketplace/internal/infra/metrics"
)

// StripeGateway implements PaymentGateway with Stripe Checkout Sessions. It is
// the alternate provider for cards; Chapa remains the default for local
// payments. The transaction reference travels as the session's
// client_reference_id so the callback can correlate it.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, domain.ErrInvalidArgument
	}
	stripe.Key = secretKey
	return &StripeGateway{}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) InitializeTransaction(ctx context.Context, req adapter.TransactionRequest) (string, error) {
	// Stripe wants the amount in minor units; platform prices are whole-unit
	// integers serialized as plain decimal strings.
	units, err := strconv.ParseInt(req.Amount, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: non-integer amount %q", domain.ErrInvalidArgument, req.Amount)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.TxRef),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(units * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Customization.Title),
						Description: stripe.String(req.Customization.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.CallbackURL + "&status=success"),
		CancelURL:  stripe.String(req.CallbackURL + "&status=cancelled"),
	}
	params.Context = ctx

	start := time.Now()
	sess, err := session.New(params)
	if err != nil {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayFailed, err)
	}
	if sess.URL == "" {
		metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: stripe session has no URL", domain.ErrGatewayFailed)
	}
	metrics.ObserveGatewayCall(g.Name(), time.Since(start).Seconds(), true)
	return sess.URL, nil
}
