package payments

import (
	"context"
	"strings"

	sq "github.com/square/square-go-sdk"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/square"
	"github.com/prakashthakuri/Happy-Hours/pkg/stripe"
)

// ChargeRequest is what every gateway needs to capture a payment.
type ChargeRequest struct {
	AmountCents    int64
	Currency       string
	Token          string
	IdempotencyKey string
	Description    string
	Reference      string
}

// Gateway captures a charge and returns the processor's charge id. Errors are
// pkg/errors payment codes.
type Gateway interface {
	Provider() enums.PaymentProvider
	CreateCharge(ctx context.Context, req ChargeRequest) (string, error)
}

type stripeCharger interface {
	CreateCharge(ctx context.Context, p stripe.ChargeParams) (string, error)
}

// StripeGateway settles card payments.
type StripeGateway struct {
	client stripeCharger
}

// NewStripeGateway wraps the Stripe client.
func NewStripeGateway(client stripeCharger) *StripeGateway {
	return &StripeGateway{client: client}
}

func (g *StripeGateway) Provider() enums.PaymentProvider { return enums.PaymentProviderStripe }

func (g *StripeGateway) CreateCharge(ctx context.Context, req ChargeRequest) (string, error) {
	return g.client.CreateCharge(ctx, stripe.ChargeParams{
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		Source:         req.Token,
		IdempotencyKey: req.IdempotencyKey,
		Description:    req.Description,
		Metadata:       map[string]string{"order_id": req.Reference},
	})
}

type squarePayer interface {
	CreatePayment(ctx context.Context, params square.PaymentCreateParams) (*sq.Payment, error)
}

// SquareGateway settles wallet and gift card nonces.
type SquareGateway struct {
	client squarePayer
}

// NewSquareGateway wraps the Square client.
func NewSquareGateway(client squarePayer) *SquareGateway {
	return &SquareGateway{client: client}
}

func (g *SquareGateway) Provider() enums.PaymentProvider { return enums.PaymentProviderSquare }

func (g *SquareGateway) CreateCharge(ctx context.Context, req ChargeRequest) (string, error) {
	payment, err := g.client.CreatePayment(ctx, square.PaymentCreateParams{
		AmountCents:    req.AmountCents,
		Currency:       strings.ToUpper(req.Currency),
		SourceID:       req.Token,
		IdempotencyKey: req.IdempotencyKey,
		Note:           req.Description,
		ReferenceID:    req.Reference,
	})
	if err != nil {
		return "", err
	}
	if payment == nil || payment.GetID() == nil || *payment.GetID() == "" {
		return "", pkgerrors.New(pkgerrors.CodePaymentGateway, "square returned no payment id")
	}
	return *payment.GetID(), nil
}
