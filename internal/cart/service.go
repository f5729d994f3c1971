package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	"github.com/prakashthakuri/Happy-Hours/pkg/redis"
)

const openOrderSavepoint = "open_order"

// Service exposes the shopper's cart operations.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error)
	DecrementItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error)
	GetOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

type service struct {
	repo   OrderRepository
	tx     txRunner
	items  itemLookup
	locker UserLocker
	logg   *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo OrderRepository, tx txRunner, items itemLookup, locker UserLocker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if items == nil {
		return nil, fmt.Errorf("item lookup required")
	}
	if locker == nil {
		return nil, fmt.Errorf("user locker required")
	}
	return &service{repo: repo, tx: tx, items: items, locker: locker, logg: logg}, nil
}

// AddItem puts one unit of the item into the shopper's open order, creating
// the order when none exists.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	item, err := s.lookupItem(ctx, slug)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	err = WithLock(ctx, s.locker, userID, func(ctx context.Context) error {
		return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			order, err := s.ensureOpenOrder(ctx, tx, repo, userID)
			if err != nil {
				return err
			}

			line, err := repo.FindLineItem(ctx, order.ID, item.ID)
			switch {
			case err == nil:
				if err := repo.IncrementQuantity(ctx, line.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment line item")
				}
			case db.IsNotFound(err):
				if _, err := repo.CreateLineItem(ctx, &models.LineItem{
					OrderID:  order.ID,
					UserID:   userID,
					ItemID:   item.ID,
					Quantity: 1,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line item")
				}
			default:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
			}
			updated, err = touchAndReload(ctx, repo, order.ID, userID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveItem deletes the item's line from the open order regardless of quantity.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	return s.mutateLine(ctx, userID, slug, func(ctx context.Context, repo OrderRepository, line *models.LineItem) error {
		if err := repo.DeleteLineItem(ctx, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete line item")
		}
		return nil
	})
}

// DecrementItem lowers the item's quantity by one, removing the line at one.
func (s *service) DecrementItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	return s.mutateLine(ctx, userID, slug, func(ctx context.Context, repo OrderRepository, line *models.LineItem) error {
		if line.Quantity > 1 {
			if err := repo.DecrementQuantity(ctx, line.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement line item")
			}
			return nil
		}
		if err := repo.DeleteLineItem(ctx, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete line item")
		}
		return nil
	})
}

// GetOpenOrder returns the shopper's unsettled order with items loaded.
func (s *service) GetOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	order, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, mapOpenOrderErr(err)
	}
	return order, nil
}

type lineMutation func(ctx context.Context, repo OrderRepository, line *models.LineItem) error

func (s *service) mutateLine(ctx context.Context, userID uuid.UUID, slug string, mutate lineMutation) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	item, err := s.lookupItem(ctx, slug)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	err = WithLock(ctx, s.locker, userID, func(ctx context.Context) error {
		return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			order, err := repo.FindOpenByUser(ctx, userID)
			if err != nil {
				return mapOpenOrderErr(err)
			}
			line, ok := order.FindLine(item.ID)
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "This item was not in your cart").
					WithDetails(map[string]any{"slug": item.Slug})
			}
			if err := mutate(ctx, repo, line); err != nil {
				return err
			}
			updated, err = touchAndReload(ctx, repo, order.ID, userID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) lookupItem(ctx context.Context, slug string) (*models.Item, error) {
	item, err := s.items.FindBySlug(ctx, slug)
	if err == nil {
		return item, nil
	}
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
			WithDetails(map[string]any{"slug": slug})
	}
	if pkgerrors.As(err) != nil {
		return nil, err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
}

// ensureOpenOrder returns the open order, creating one when missing. A
// concurrent creator that wins ux_orders_user_open is re-read instead of
// failing the request.
func (s *service) ensureOpenOrder(ctx context.Context, tx *gorm.DB, repo OrderRepository, userID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindOpenByUser(ctx, userID)
	if err == nil {
		return order, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
	}

	if err := tx.SavePoint(openOrderSavepoint).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "savepoint")
	}
	order, err = repo.CreateOpen(ctx, &models.Order{UserID: userID})
	if err == nil {
		return order, nil
	}
	if !db.IsUniqueViolation(err, "ux_orders_user_open") {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create open order")
	}
	if err := tx.RollbackTo(openOrderSavepoint).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rollback to savepoint")
	}
	if s.logg != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "open order created concurrently, re-reading")
	}
	order, err = repo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload open order")
	}
	return order, nil
}

// touchAndReload bumps the order's updated_at and returns it as committed by
// the current transaction.
func touchAndReload(ctx context.Context, repo OrderRepository, orderID, userID uuid.UUID) (*models.Order, error) {
	if err := repo.Touch(ctx, orderID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch order")
	}
	order, err := repo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload open order")
	}
	return order, nil
}

func mapOpenOrderErr(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNoActiveOrder, "no active order")
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
}

// WithLock runs fn under the shopper's lock. A lock that cannot be acquired
// in time surfaces as a conflict so clients can retry.
func WithLock(ctx context.Context, locker UserLocker, userID uuid.UUID, fn func(ctx context.Context) error) error {
	err := locker.WithUserLock(ctx, userID, fn)
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "another request for this cart is in progress")
	}
	return err
}
