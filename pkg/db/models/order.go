package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// Order is a shopper's cart until it is settled, and the placed order after.
// A user has at most one unsettled order (ux_orders_user_open).
type Order struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	Settled          bool                 `gorm:"column:settled;not null;default:false"`
	PaymentMethod    *enums.PaymentMethod `gorm:"column:payment_method"`
	BillingAddressID *uuid.UUID           `gorm:"column:billing_address_id;type:uuid"`
	PaymentID        *uuid.UUID           `gorm:"column:payment_id;type:uuid"`
	StartedAt        time.Time            `gorm:"column:started_at;autoCreateTime"`
	OrderedAt        *time.Time           `gorm:"column:ordered_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Items          []LineItem      `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	BillingAddress *BillingAddress `gorm:"foreignKey:BillingAddressID;references:ID"`
	Payment        *Payment        `gorm:"foreignKey:PaymentID;references:ID"`
}

// FindLine returns the line item for itemID, if present.
func (o *Order) FindLine(itemID uuid.UUID) (*LineItem, bool) {
	if o == nil {
		return nil, false
	}
	for i := range o.Items {
		if o.Items[i].ItemID == itemID {
			return &o.Items[i], true
		}
	}
	return nil, false
}
