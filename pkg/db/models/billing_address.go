package models

import (
	"time"

	"github.com/google/uuid"
)

// BillingAddress is captured at checkout and never edited afterwards.
type BillingAddress struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	StreetAddress    string    `gorm:"column:street_address;not null"`
	ApartmentAddress *string   `gorm:"column:apartment_address"`
	Country          string    `gorm:"column:country;type:char(2);not null"`
	City             string    `gorm:"column:city;not null"`
	Zip              string    `gorm:"column:zip;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
