package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// LineDTO is a priced cart line returned to clients.
type LineDTO struct {
	LineItemID  uuid.UUID `json:"line_item_id"`
	ItemID      uuid.UUID `json:"item_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	FinalPrice  string    `json:"final_price"`
	ListPrice   string    `json:"list_price"`
	AmountSaved string    `json:"amount_saved"`
}

// OrderDTO is the cart payload.
type OrderDTO struct {
	ID            uuid.UUID  `json:"id"`
	Settled       bool       `json:"settled"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	OrderedAt     *time.Time `json:"ordered_at,omitempty"`
	Lines         []LineDTO  `json:"lines"`
	ItemCount     int        `json:"item_count"`
	TotalSaved    string     `json:"total_saved"`
	Total         string     `json:"total"`
}

// NewOrderDTO prices the order and maps it into its API shape.
func NewOrderDTO(order *models.Order) OrderDTO {
	summary := Summarize(order)
	dto := OrderDTO{
		ID:         order.ID,
		Settled:    order.Settled,
		StartedAt:  order.StartedAt,
		OrderedAt:  order.OrderedAt,
		Lines:      make([]LineDTO, 0, len(summary.Lines)),
		ItemCount:  summary.ItemCount,
		TotalSaved: summary.TotalSaved.StringFixed(2),
		Total:      summary.Total.StringFixed(2),
	}
	if order.PaymentMethod != nil {
		method := order.PaymentMethod.String()
		dto.PaymentMethod = &method
	}
	for _, line := range summary.Lines {
		dto.Lines = append(dto.Lines, LineDTO{
			LineItemID:  line.LineItemID,
			ItemID:      line.ItemID,
			Slug:        line.Slug,
			Title:       line.Title,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			FinalPrice:  line.FinalPrice.StringFixed(2),
			ListPrice:   line.ListPrice.StringFixed(2),
			AmountSaved: line.AmountSaved.StringFixed(2),
		})
	}
	return dto
}
