package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// Item is a purchasable catalog product. The order workflow only reads it.
type Item struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string              `gorm:"column:title;not null"`
	Slug          string              `gorm:"column:slug;not null;uniqueIndex"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPrice decimal.NullDecimal `gorm:"column:discount_price;type:numeric(10,2)"`
	Category      enums.ItemCategory  `gorm:"column:category;not null"`
	Label         enums.ItemLabel     `gorm:"column:label;not null;default:'primary'"`
	Type          *enums.ItemType     `gorm:"column:type"`
	Size          *enums.ItemSize     `gorm:"column:size"`
	Region        *string             `gorm:"column:region"`
	ABV           *string             `gorm:"column:abv"`
	Features      *string             `gorm:"column:features"`
	Tasting       *string             `gorm:"column:tasting"`
	Description   string              `gorm:"column:description;not null;default:''"`
	ImageURL      *string             `gorm:"column:image_url"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// UnitPrice is the price charged per unit: the discount price when set,
// otherwise the list price.
func (i Item) UnitPrice() decimal.Decimal {
	if i.DiscountPrice.Valid {
		return i.DiscountPrice.Decimal
	}
	return i.Price
}
