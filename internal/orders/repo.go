package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// Repository persists settlement state and receipts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) orderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// InsertPayment stores the receipt for a captured charge.
func (r *Repository) InsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// SettleOrder flips an unsettled order to settled and links its receipt. It
// reports zero rows when the order was already settled.
func (r *Repository) SettleOrder(ctx context.Context, orderID, paymentID uuid.UUID, orderedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND settled = ?", orderID, false).
		Updates(map[string]any{
			"settled":    true,
			"ordered_at": orderedAt,
			"payment_id": paymentID,
			"updated_at": orderedAt,
		})
	return res.RowsAffected, res.Error
}

// SettleLineItems marks every line of the order settled.
func (r *Repository) SettleLineItems(ctx context.Context, orderID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LineItem{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"settled": true, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

// FindLines loads the order's lines with their items for repricing.
func (r *Repository) FindLines(ctx context.Context, orderID uuid.UUID) ([]models.LineItem, error) {
	var lines []models.LineItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByID loads an order with its lines and receipt.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payment").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
