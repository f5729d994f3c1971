package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// Payment is the receipt of a successful charge. One per order.
type Payment struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID             `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_payments_order"`
	UserID           uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	Provider         enums.PaymentProvider `gorm:"column:provider;not null"`
	Method           enums.PaymentMethod   `gorm:"column:method;not null"`
	ExternalChargeID string                `gorm:"column:external_charge_id;not null;uniqueIndex:ux_payments_external_charge"`
	AmountCents      int64                 `gorm:"column:amount_cents;not null"`
	Currency         string                `gorm:"column:currency;not null;default:'usd'"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
}
