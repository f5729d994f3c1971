package stripe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
)

type chargeCreator interface {
	Create(ctx context.Context, params *stripe.ChargeCreateParams) (*stripe.Charge, error)
}

// ChargeParams describes a one-shot card charge against a tokenized source.
type ChargeParams struct {
	AmountCents    int64
	Currency       string
	Source         string
	IdempotencyKey string
	Description    string
	Metadata       map[string]string
}

// CreateCharge captures a card charge and returns the Stripe charge id.
// Failures come back as payment error codes from pkg/errors.
func (c *Client) CreateCharge(ctx context.Context, p ChargeParams) (string, error) {
	if c == nil || c.charges == nil {
		return "", pkgerrors.New(pkgerrors.CodePaymentGateway, "stripe client not initialized")
	}
	if p.AmountCents <= 0 {
		return "", pkgerrors.New(pkgerrors.CodePaymentInvalidRequest, "charge amount must be positive")
	}
	if strings.TrimSpace(p.Source) == "" {
		return "", pkgerrors.New(pkgerrors.CodePaymentInvalidRequest, "charge source token is required")
	}

	currency := strings.ToLower(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.ChargeCreateParams{
		Amount:   stripe.Int64(p.AmountCents),
		Currency: stripe.String(currency),
	}
	if p.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(p.IdempotencyKey)
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	if err := params.SetSource(p.Source); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodePaymentInvalidRequest, err, "invalid charge source")
	}

	ch, err := c.charges.Create(ctx, params)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn(c.logger.WithField(ctx, "stripe_error", summarize(err)), "stripe charge failed")
		}
		return "", mapStripeError(err)
	}
	if ch == nil || ch.ID == "" {
		return "", pkgerrors.New(pkgerrors.CodePaymentGateway, "stripe returned no charge")
	}
	if ch.Status == stripe.ChargeStatusFailed {
		return "", pkgerrors.New(pkgerrors.CodePaymentDeclined, "stripe charge failed").
			WithDetails(map[string]any{"decline_code": string(ch.FailureCode)})
	}
	return ch.ID, nil
}

func mapStripeError(err error) error {
	const message = "stripe create charge failed"

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard:
			declineCode := string(stripeErr.DeclineCode)
			if declineCode == "" {
				declineCode = string(stripeErr.Code)
			}
			return pkgerrors.Wrap(pkgerrors.CodePaymentDeclined, err, message).
				WithDetails(map[string]any{"decline_code": declineCode})
		case stripeErr.HTTPStatusCode == http.StatusTooManyRequests || stripeErr.Code == stripe.ErrorCodeRateLimit:
			return pkgerrors.Wrap(pkgerrors.CodePaymentRateLimited, err, message)
		case stripeErr.HTTPStatusCode == http.StatusUnauthorized || stripeErr.HTTPStatusCode == http.StatusForbidden:
			return pkgerrors.Wrap(pkgerrors.CodePaymentAuthFailed, err, message)
		case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
			return pkgerrors.Wrap(pkgerrors.CodePaymentInvalidRequest, err, message)
		default:
			return pkgerrors.Wrap(pkgerrors.CodePaymentGateway, err, message)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(pkgerrors.CodePaymentNetwork, err, message)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return pkgerrors.Wrap(pkgerrors.CodePaymentNetwork, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodePaymentGateway, err, message)
}

// summarize keeps processor payloads out of logs.
func summarize(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Sprintf("type=%s code=%s status=%d request=%s", stripeErr.Type, stripeErr.Code, stripeErr.HTTPStatusCode, stripeErr.RequestID)
	}
	return fmt.Sprintf("%T", err)
}
