package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// OrderPaidEvent is emitted once an order is settled and its charge recorded.
// Downstream delivery assignment consumes it.
type OrderPaidEvent struct {
	OrderID          uuid.UUID             `json:"order_id"`
	UserID           uuid.UUID             `json:"user_id"`
	PaymentID        uuid.UUID             `json:"payment_id"`
	Provider         enums.PaymentProvider `json:"provider"`
	Method           enums.PaymentMethod   `json:"method"`
	ExternalChargeID string                `json:"external_charge_id"`
	AmountCents      int64                 `json:"amount_cents"`
	Currency         string                `json:"currency"`
	LineItemCount    int                   `json:"line_item_count"`
	OrderedAt        time.Time             `json:"ordered_at"`
}
