package models

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one catalog item with a quantity inside an order.
type LineItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Settled   bool      `gorm:"column:settled;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Item Item `gorm:"foreignKey:ItemID;references:ID"`
}
