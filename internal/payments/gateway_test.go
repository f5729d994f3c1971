package payments

import (
	"context"
	"testing"

	sq "github.com/square/square-go-sdk"
	"github.com/stretchr/testify/require"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/square"
	"github.com/prakashthakuri/Happy-Hours/pkg/stripe"
)

type stubStripe struct {
	got stripe.ChargeParams
}

func (s *stubStripe) CreateCharge(_ context.Context, p stripe.ChargeParams) (string, error) {
	s.got = p
	return "ch_123", nil
}

type stubSquare struct {
	got     square.PaymentCreateParams
	payment *sq.Payment
	err     error
}

func (s *stubSquare) CreatePayment(_ context.Context, p square.PaymentCreateParams) (*sq.Payment, error) {
	s.got = p
	return s.payment, s.err
}

func TestStripeGatewayMapsRequest(t *testing.T) {
	client := &stubStripe{}
	gw := NewStripeGateway(client)
	require.Equal(t, enums.PaymentProviderStripe, gw.Provider())

	id, err := gw.CreateCharge(context.Background(), ChargeRequest{
		AmountCents:    2500,
		Currency:       "usd",
		Token:          "tok_visa",
		IdempotencyKey: "key",
		Reference:      "order-1",
	})
	require.NoError(t, err)
	require.Equal(t, "ch_123", id)
	require.EqualValues(t, 2500, client.got.AmountCents)
	require.Equal(t, "tok_visa", client.got.Source)
	require.Equal(t, "key", client.got.IdempotencyKey)
	require.Equal(t, "order-1", client.got.Metadata["order_id"])
}

func TestSquareGatewayReturnsPaymentID(t *testing.T) {
	id := "sq_pay_1"
	client := &stubSquare{payment: &sq.Payment{ID: &id}}
	gw := NewSquareGateway(client)
	require.Equal(t, enums.PaymentProviderSquare, gw.Provider())

	got, err := gw.CreateCharge(context.Background(), ChargeRequest{AmountCents: 999, Currency: "usd", Token: "cnon:gift", IdempotencyKey: "k"})
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.Equal(t, "USD", client.got.Currency)
	require.Equal(t, "cnon:gift", client.got.SourceID)
}

func TestSquareGatewayMissingPayment(t *testing.T) {
	gw := NewSquareGateway(&stubSquare{})
	_, err := gw.CreateCharge(context.Background(), ChargeRequest{AmountCents: 1, Token: "x"})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodePaymentGateway))
}
