package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// Repository persists orders and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindOpenByUser loads the shopper's unsettled order with line items and
// their catalog items.
func (r *Repository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_items.created_at ASC").Order("line_items.id ASC")
		}).
		Preload("Items.Item").
		Where("user_id = ? AND settled = ?", userID, false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOpen inserts a new unsettled order.
func (r *Repository) CreateOpen(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Settled = false
	if err := r.db.WithContext(ctx).Omit("Items", "BillingAddress", "Payment").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindLineItem returns the line for itemID inside orderID.
func (r *Repository) FindLineItem(ctx context.Context, orderID, itemID uuid.UUID) (*models.LineItem, error) {
	var line models.LineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND item_id = ?", orderID, itemID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateLineItem inserts a new line.
func (r *Repository) CreateLineItem(ctx context.Context, line *models.LineItem) (*models.LineItem, error) {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if err := r.db.WithContext(ctx).Omit("Item").Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// IncrementQuantity bumps a line's quantity by one in place.
func (r *Repository) IncrementQuantity(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.LineItem{}).
		Where("id = ?", lineID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

// DecrementQuantity lowers a line's quantity by one, never below one.
func (r *Repository) DecrementQuantity(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.LineItem{}).
		Where("id = ? AND quantity > 1", lineID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

// DeleteLineItem removes a line regardless of quantity.
func (r *Repository) DeleteLineItem(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", lineID).Delete(&models.LineItem{}).Error
}

// Touch refreshes the order's updated_at.
func (r *Repository) Touch(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("updated_at", time.Now().UTC()).Error
}
