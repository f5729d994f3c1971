package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/internal/payments"
	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	"github.com/prakashthakuri/Happy-Hours/pkg/outbox"
	"github.com/prakashthakuri/Happy-Hours/pkg/outbox/payloads"
)

type orderRepository interface {
	WithTx(tx *gorm.DB) orderRepository
	InsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	SettleOrder(ctx context.Context, orderID, paymentID uuid.UUID, orderedAt time.Time) (int64, error)
	SettleLineItems(ctx context.Context, orderID uuid.UUID) (int64, error)
	FindLines(ctx context.Context, orderID uuid.UUID) ([]models.LineItem, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type openOrderLoader interface {
	GetOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

// Charger captures a payment for an order.
type Charger interface {
	Charge(ctx context.Context, order *models.Order, method enums.PaymentMethod, token string) (payments.Result, error)
}

// Service settles orders once a charge has been captured.
type Service interface {
	Finalize(ctx context.Context, order *models.Order, result payments.Result) (*Receipt, error)
	Pay(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod, token string) (*Receipt, error)
}

type service struct {
	repo    orderRepository
	tx      txRunner
	outbox  outboxPublisher
	carts   openOrderLoader
	charger Charger
	locker  cart.UserLocker
	logg    *logger.Logger
	now     func() time.Time
}

// Deps groups the collaborators of the order service.
type Deps struct {
	Repo    orderRepository
	Tx      txRunner
	Outbox  outboxPublisher
	Carts   openOrderLoader
	Charger Charger
	Locker  cart.UserLocker
	Logger  *logger.Logger
}

// NewService builds the order finalizer.
func NewService(deps Deps) (Service, error) {
	switch {
	case deps.Repo == nil:
		return nil, fmt.Errorf("order repository required")
	case deps.Tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	case deps.Outbox == nil:
		return nil, fmt.Errorf("outbox publisher required")
	case deps.Carts == nil:
		return nil, fmt.Errorf("open order loader required")
	case deps.Charger == nil:
		return nil, fmt.Errorf("payment charger required")
	case deps.Locker == nil:
		return nil, fmt.Errorf("user locker required")
	}
	return &service{
		repo:    deps.Repo,
		tx:      deps.Tx,
		outbox:  deps.Outbox,
		carts:   deps.Carts,
		charger: deps.Charger,
		locker:  deps.Locker,
		logg:    deps.Logger,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Pay loads the open order, charges it and settles it. The gateway call runs
// without the shopper lock; settlement runs under it.
func (s *service) Pay(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod, token string) (*Receipt, error) {
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPaymentOption, "Invalid Payment Option Selected").
			WithDetails(map[string]any{"payment_option": method.String()})
	}
	order, err := s.carts.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order.BillingAddressID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "You have not added a billing address")
	}
	if order.PaymentMethod != nil && *order.PaymentMethod != method {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPaymentOption, "payment method does not match checkout").
			WithDetails(map[string]any{"payment_option": method.String()})
	}

	result, err := s.charger.Charge(ctx, order, method, token)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, result.Err()
	}

	var receipt *Receipt
	err = cart.WithLock(ctx, s.locker, userID, func(ctx context.Context) error {
		var ferr error
		receipt, ferr = s.Finalize(ctx, order, result)
		return ferr
	})
	if err != nil {
		if s.logg != nil {
			logCtx := s.logg.WithOrderID(s.logg.WithUserID(ctx, userID.String()), order.ID.String())
			logCtx = s.logg.WithField(logCtx, "charge_id", result.ChargeID)
			s.logg.Error(logCtx, "charge captured but order not finalized", err)
		}
		return nil, err
	}
	return receipt, nil
}

// Finalize commits the terminal state for a charge outcome. A successful
// charge settles the order, stores the receipt, settles every line and queues
// order_paid in one transaction. Any other outcome leaves the order untouched.
func (s *service) Finalize(ctx context.Context, order *models.Order, result payments.Result) (*Receipt, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if !result.Succeeded() {
		return nil, result.Err()
	}

	orderedAt := s.now()
	var receipt *Receipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindLines(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order lines")
		}
		if err := matchCharged(order.ID, current, result.AmountCents); err != nil {
			return err
		}

		payment, err := repo.InsertPayment(ctx, &models.Payment{
			OrderID:          order.ID,
			UserID:           order.UserID,
			Provider:         result.Provider,
			Method:           result.Method,
			ExternalChargeID: result.ChargeID,
			AmountCents:      result.AmountCents,
			Currency:         result.Currency,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "ux_payments_order") || db.IsUniqueViolation(err, "ux_payments_external_charge") {
				return alreadySettled()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert payment receipt")
		}

		rows, err := repo.SettleOrder(ctx, order.ID, payment.ID, orderedAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle order")
		}
		if rows == 0 {
			return alreadySettled()
		}

		settledLines, err := repo.SettleLineItems(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle line items")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderPaid,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: order.UserID},
			OccurredAt:    orderedAt,
			Data: payloads.OrderPaidEvent{
				OrderID:          order.ID,
				UserID:           order.UserID,
				PaymentID:        payment.ID,
				Provider:         payment.Provider,
				Method:           payment.Method,
				ExternalChargeID: payment.ExternalChargeID,
				AmountCents:      payment.AmountCents,
				Currency:         payment.Currency,
				LineItemCount:    int(settledLines),
				OrderedAt:        orderedAt,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order paid event")
		}

		receipt = newReceipt(payment, orderedAt)
		return nil
	})
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeAlreadySettled) && s.logg != nil {
			logCtx := s.logg.WithOrderID(ctx, order.ID.String())
			s.logg.Warn(s.logg.WithField(logCtx, "charge_id", result.ChargeID), "finalize on settled order")
		}
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(s.logg.WithUserID(ctx, order.UserID.String()), order.ID.String())
		s.logg.Info(s.logg.WithField(logCtx, "payment_id", receipt.PaymentID.String()), "order settled")
	}
	return receipt, nil
}

// matchCharged rejects settlement when the order's lines no longer price to
// the captured amount.
func matchCharged(orderID uuid.UUID, lines []models.LineItem, chargedCents int64) error {
	expected, err := payments.MinorUnits(cart.ComputeTotal(&models.Order{ID: orderID, Items: lines}))
	if err != nil || expected != chargedCents {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed while the payment was in flight").
			WithDetails(map[string]any{
				"order_total_cents": expected,
				"charged_cents":     chargedCents,
			})
	}
	return nil
}

func alreadySettled() error {
	return pkgerrors.New(pkgerrors.CodeAlreadySettled, "order already settled")
}
