package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// LineSummary prices a single line of the cart.
type LineSummary struct {
	LineItemID  uuid.UUID
	ItemID      uuid.UUID
	Slug        string
	Title       string
	Quantity    int
	UnitPrice   decimal.Decimal
	FinalPrice  decimal.Decimal
	ListPrice   decimal.Decimal
	AmountSaved decimal.Decimal
}

// Summary is the priced view of an order.
type Summary struct {
	OrderID    uuid.UUID
	Lines      []LineSummary
	ItemCount  int
	TotalSaved decimal.Decimal
	Total      decimal.Decimal
}

// ComputeTotal sums quantity times unit price over every line. The unit price
// is the discount price when one is set.
func ComputeTotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	if order == nil {
		return total
	}
	for _, line := range order.Items {
		total = total.Add(lineFinal(line))
	}
	return total
}

// Summarize prices every line of the order and reports savings.
func Summarize(order *models.Order) Summary {
	summary := Summary{Total: decimal.Zero, TotalSaved: decimal.Zero}
	if order == nil {
		return summary
	}
	summary.OrderID = order.ID
	summary.Lines = make([]LineSummary, 0, len(order.Items))
	for _, line := range order.Items {
		qty := decimal.NewFromInt(int64(line.Quantity))
		final := lineFinal(line)
		list := line.Item.Price.Mul(qty)
		summary.Lines = append(summary.Lines, LineSummary{
			LineItemID:  line.ID,
			ItemID:      line.ItemID,
			Slug:        line.Item.Slug,
			Title:       line.Item.Title,
			Quantity:    line.Quantity,
			UnitPrice:   line.Item.UnitPrice(),
			FinalPrice:  final,
			ListPrice:   list,
			AmountSaved: list.Sub(final),
		})
		summary.ItemCount += line.Quantity
		summary.Total = summary.Total.Add(final)
		summary.TotalSaved = summary.TotalSaved.Add(list.Sub(final))
	}
	return summary
}

func lineFinal(line models.LineItem) decimal.Decimal {
	return line.Item.UnitPrice().Mul(decimal.NewFromInt(int64(line.Quantity)))
}
