package catalog

import (
	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// ItemDTO is the catalog payload returned to clients. Money is rendered as
// fixed two-decimal strings.
type ItemDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Price         string    `json:"price"`
	DiscountPrice *string   `json:"discount_price,omitempty"`
	Category      string    `json:"category"`
	Label         string    `json:"label"`
	Type          *string   `json:"type,omitempty"`
	Size          *string   `json:"size,omitempty"`
	Region        *string   `json:"region,omitempty"`
	ABV           *string   `json:"abv,omitempty"`
	Features      *string   `json:"features,omitempty"`
	Tasting       *string   `json:"tasting,omitempty"`
	Description   string    `json:"description"`
	ImageURL      *string   `json:"image_url,omitempty"`
}

// NewItemDTO maps an item model into its API shape.
func NewItemDTO(item *models.Item) ItemDTO {
	dto := ItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Price:       item.Price.StringFixed(2),
		Category:    string(item.Category),
		Label:       string(item.Label),
		Region:      item.Region,
		ABV:         item.ABV,
		Features:    item.Features,
		Tasting:     item.Tasting,
		Description: item.Description,
		ImageURL:    item.ImageURL,
	}
	if item.DiscountPrice.Valid {
		v := item.DiscountPrice.Decimal.StringFixed(2)
		dto.DiscountPrice = &v
	}
	if item.Type != nil {
		v := string(*item.Type)
		dto.Type = &v
	}
	if item.Size != nil {
		v := string(*item.Size)
		dto.Size = &v
	}
	return dto
}
