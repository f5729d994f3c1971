package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

const defaultChargeTimeout = 20 * time.Second

// idempotencyNamespace seeds the deterministic charge keys.
var idempotencyNamespace = uuid.MustParse("8f0c7f5e-3d7a-4f0e-9a61-2b1f5c8d9e40")

var hundred = decimal.NewFromInt(100)

type chargeObserver interface {
	ObserveCharge(provider, outcome string, elapsed time.Duration)
}

// Adapter picks the gateway for a payment method and turns whatever it does
// into a Result. It never writes to the order.
type Adapter struct {
	gateways map[enums.PaymentMethod]Gateway
	timeout  time.Duration
	currency string
	metrics  chargeObserver
	logg     *logger.Logger
}

// NewAdapter wires the per-method gateways.
func NewAdapter(cfg config.PaymentsConfig, gateways map[enums.PaymentMethod]Gateway, metrics chargeObserver, logg *logger.Logger) (*Adapter, error) {
	if len(gateways) == 0 {
		return nil, fmt.Errorf("at least one payment gateway required")
	}
	for method, gw := range gateways {
		if !method.IsValid() {
			return nil, fmt.Errorf("unknown payment method %q", method)
		}
		if gw == nil {
			return nil, fmt.Errorf("gateway for %s is nil", method)
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultChargeTimeout
	}
	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = "usd"
	}
	return &Adapter{
		gateways: gateways,
		timeout:  timeout,
		currency: currency,
		metrics:  metrics,
		logg:     logg,
	}, nil
}

// Charge captures the order total through the method's gateway. The returned
// error is reserved for precondition failures; every gateway outcome, panics
// included, comes back as a Result.
func (a *Adapter) Charge(ctx context.Context, order *models.Order, method enums.PaymentMethod, token string) (Result, error) {
	if order == nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if order.Settled {
		return Result{}, pkgerrors.New(pkgerrors.CodeAlreadySettled, "order already settled")
	}
	gw, ok := a.gateways[method]
	if !ok {
		return Result{}, pkgerrors.New(pkgerrors.CodeInvalidPaymentOption, "Invalid Payment Option Selected").
			WithDetails(map[string]any{"payment_option": method.String()})
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "payment token is required")
	}
	amount, err := MinorUnits(cart.ComputeTotal(order))
	if err != nil {
		return Result{}, err
	}

	req := ChargeRequest{
		AmountCents:    amount,
		Currency:       a.currency,
		Token:          token,
		IdempotencyKey: IdempotencyKey(order.ID, amount, token),
		Description:    fmt.Sprintf("Happy Hours order %s", order.ID),
		Reference:      order.ID.String(),
	}

	started := time.Now()
	result := a.invoke(ctx, gw, req)
	result.Method = method
	result.AmountCents = amount
	result.Currency = a.currency
	if a.metrics != nil {
		a.metrics.ObserveCharge(gw.Provider().String(), string(result.Kind), time.Since(started))
	}
	a.logOutcome(ctx, order.ID, result)
	return result, nil
}

func (a *Adapter) invoke(ctx context.Context, gw Gateway, req ChargeRequest) (result Result) {
	result.Provider = gw.Provider()
	defer func() {
		if r := recover(); r != nil {
			if a.logg != nil {
				a.logg.Error(ctx, "payment gateway panicked", fmt.Errorf("panic: %v", r))
			}
			result = Result{Kind: KindUnknownGatewayError, Provider: gw.Provider()}
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	chargeID, err := gw.CreateCharge(callCtx, req)
	if err != nil {
		return classify(gw.Provider(), err)
	}
	if strings.TrimSpace(chargeID) == "" {
		return Result{Kind: KindUnknownGatewayError, Provider: gw.Provider()}
	}
	return Result{Kind: KindSuccess, Provider: gw.Provider(), ChargeID: chargeID}
}

func classify(provider enums.PaymentProvider, err error) Result {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Result{Kind: KindNetworkError, Provider: provider}
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return Result{Kind: KindUnknownGatewayError, Provider: provider}
	}
	res := Result{Kind: kindForCode(typed.Code()), Provider: provider}
	if res.Kind == KindDeclined {
		res.DeclineCode = declineCode(typed.Details())
	}
	return res
}

func declineCode(details any) string {
	m, ok := details.(map[string]any)
	if !ok {
		return ""
	}
	code, _ := m["decline_code"].(string)
	return code
}

func (a *Adapter) logOutcome(ctx context.Context, orderID uuid.UUID, result Result) {
	if a.logg == nil {
		return
	}
	ctx = a.logg.WithOrderID(ctx, orderID.String())
	ctx = a.logg.WithFields(ctx, map[string]any{
		"provider": result.Provider.String(),
		"outcome":  string(result.Kind),
		"amount":   result.AmountCents,
	})
	if result.Succeeded() {
		a.logg.Info(a.logg.WithField(ctx, "charge_id", result.ChargeID), "payment captured")
		return
	}
	a.logg.Warn(ctx, "payment not captured")
}

// MinorUnits converts a decimal total to cents, rounding half away from zero.
// Non-positive totals cannot be charged.
func MinorUnits(total decimal.Decimal) (int64, error) {
	cents := total.Mul(hundred).Round(0)
	if !cents.IsPositive() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order total must be greater than zero")
	}
	return cents.IntPart(), nil
}

// IdempotencyKey derives a stable key for one charge attempt so retries of the
// same request reach the processor with the same key.
func IdempotencyKey(orderID uuid.UUID, amountCents int64, token string) string {
	name := fmt.Sprintf("%s:%d:%s", orderID, amountCents, token)
	return uuid.NewSHA1(idempotencyNamespace, []byte(name)).String()
}
