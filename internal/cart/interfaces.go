package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
)

// OrderRepository defines the persistence surface required by the cart service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	CreateOpen(ctx context.Context, order *models.Order) (*models.Order, error)
	FindLineItem(ctx context.Context, orderID, itemID uuid.UUID) (*models.LineItem, error)
	CreateLineItem(ctx context.Context, line *models.LineItem) (*models.LineItem, error)
	IncrementQuantity(ctx context.Context, lineID uuid.UUID) error
	DecrementQuantity(ctx context.Context, lineID uuid.UUID) error
	DeleteLineItem(ctx context.Context, lineID uuid.UUID) error
	Touch(ctx context.Context, orderID uuid.UUID) error
}

// UserLocker serializes mutations for a single shopper.
type UserLocker interface {
	WithUserLock(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error
}

type itemLookup interface {
	FindBySlug(ctx context.Context, slug string) (*models.Item, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
