package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

// PaymentRoutePrefix is where each payment method's capture endpoint lives.
const PaymentRoutePrefix = "/api/v1/payments/"

type checkoutRepository interface {
	WithTx(tx *gorm.DB) checkoutRepository
	FindOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	CreateBillingAddress(ctx context.Context, addr *models.BillingAddress) (*models.BillingAddress, error)
	AttachBilling(ctx context.Context, orderID, addressID uuid.UUID, method enums.PaymentMethod) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input is the checkout form.
type Input struct {
	StreetAddress    string `json:"street_address" validate:"required,max=100"`
	ApartmentAddress string `json:"apartment_address" validate:"omitempty,max=100"`
	Country          string `json:"country" validate:"required,iso3166_1_alpha2"`
	City             string `json:"city" validate:"required,max=100"`
	Zip              string `json:"zip" validate:"required,max=20"`
	PaymentOption    string `json:"payment_option" validate:"required"`
}

// Directive tells the client which payment route completes the order.
type Directive struct {
	OrderID    uuid.UUID             `json:"order_id"`
	Method     enums.PaymentMethod   `json:"payment_method"`
	Provider   enums.PaymentProvider `json:"provider"`
	NextAction string                `json:"next_action"`
}

// Service records billing details for the shopper's open order.
type Service interface {
	SubmitCheckout(ctx context.Context, userID uuid.UUID, input Input) (*Directive, error)
}

type service struct {
	repo     checkoutRepository
	tx       txRunner
	locker   cart.UserLocker
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds the checkout coordinator.
func NewService(repo checkoutRepository, tx txRunner, locker cart.UserLocker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if locker == nil {
		return nil, fmt.Errorf("user locker required")
	}
	return &service{repo: repo, tx: tx, locker: locker, validate: newValidator(), logg: logg}, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// SubmitCheckout validates the form, stores the billing address and links it
// with the chosen method to the open order. No gateway is contacted.
func (s *service) SubmitCheckout(ctx context.Context, userID uuid.UUID, input Input) (*Directive, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	input = normalize(input)
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	method, err := enums.ParsePaymentMethod(input.PaymentOption)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidPaymentOption, err, "Invalid Payment Option Selected").
			WithDetails(map[string]any{"payment_option": input.PaymentOption})
	}

	var directive *Directive
	err = cart.WithLock(ctx, s.locker, userID, func(ctx context.Context) error {
		return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			order, err := repo.FindOpenOrder(ctx, userID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.New(pkgerrors.CodeNoActiveOrder, "no active order")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
			}

			addr, err := repo.CreateBillingAddress(ctx, &models.BillingAddress{
				UserID:           userID,
				StreetAddress:    input.StreetAddress,
				ApartmentAddress: optional(input.ApartmentAddress),
				Country:          input.Country,
				City:             input.City,
				Zip:              input.Zip,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create billing address")
			}

			rows, err := repo.AttachBilling(ctx, order.ID, addr.ID, method)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link billing address")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeAlreadySettled, "order already settled")
			}

			directive = &Directive{
				OrderID:    order.ID,
				Method:     method,
				Provider:   method.Provider(),
				NextAction: PaymentRoutePrefix + method.String(),
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(s.logg.WithUserID(ctx, userID.String()), directive.OrderID.String())
		s.logg.Info(s.logg.WithField(logCtx, "payment_method", method.String()), "checkout submitted")
	}
	return directive, nil
}

func normalize(in Input) Input {
	in.StreetAddress = strings.TrimSpace(in.StreetAddress)
	in.ApartmentAddress = strings.TrimSpace(in.ApartmentAddress)
	in.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	in.City = strings.TrimSpace(in.City)
	in.Zip = strings.TrimSpace(in.Zip)
	in.PaymentOption = strings.TrimSpace(in.PaymentOption)
	return in
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Please fill in the required fields")
	}
	details := map[string]string{}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "iso3166_1_alpha2":
			details[fe.Field()] = "must be a two-letter country code"
		case "max":
			details[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			details[fe.Field()] = "is invalid"
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "Please fill in the required fields").WithDetails(details)
}
