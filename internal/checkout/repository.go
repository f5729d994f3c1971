package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

// Repository persists checkout state.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a checkout repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) checkoutRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindOpenOrder returns the shopper's unsettled order without associations.
func (r *Repository) FindOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND settled = ?", userID, false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateBillingAddress inserts an immutable billing address.
func (r *Repository) CreateBillingAddress(ctx context.Context, addr *models.BillingAddress) (*models.BillingAddress, error) {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

// AttachBilling links the address and payment method to an unsettled order
// and reports how many rows changed.
func (r *Repository) AttachBilling(ctx context.Context, orderID, addressID uuid.UUID, method enums.PaymentMethod) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND settled = ?", orderID, false).
		Updates(map[string]any{
			"billing_address_id": addressID,
			"payment_method":     method,
		})
	return res.RowsAffected, res.Error
}
