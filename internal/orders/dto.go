package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// Receipt is returned to the shopper once an order is placed.
type Receipt struct {
	OrderID          uuid.UUID             `json:"order_id"`
	PaymentID        uuid.UUID             `json:"payment_id"`
	Provider         enums.PaymentProvider `json:"provider"`
	Method           enums.PaymentMethod   `json:"payment_method"`
	ExternalChargeID string                `json:"charge_id"`
	AmountCents      int64                 `json:"amount_cents"`
	Currency         string                `json:"currency"`
	OrderedAt        time.Time             `json:"ordered_at"`
	Message          string                `json:"message"`
}

func newReceipt(payment *models.Payment, orderedAt time.Time) *Receipt {
	return &Receipt{
		OrderID:          payment.OrderID,
		PaymentID:        payment.ID,
		Provider:         payment.Provider,
		Method:           payment.Method,
		ExternalChargeID: payment.ExternalChargeID,
		AmountCents:      payment.AmountCents,
		Currency:         payment.Currency,
		OrderedAt:        orderedAt,
		Message:          "Your order was successful!",
	}
}
