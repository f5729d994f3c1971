package square

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"
	sqclient "github.com/square/square-go-sdk/client"
	sqcore "github.com/square/square-go-sdk/core"
	sqoption "github.com/square/square-go-sdk/option"

	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

const (
	sandboxEnv    = "sandbox"
	productionEnv = "production"
)

const (
	categoryPaymentMethod  = "PAYMENT_METHOD_ERROR"
	categoryAuthentication = "AUTHENTICATION_ERROR"
	categoryRateLimit      = "RATE_LIMIT_ERROR"
	categoryInvalidRequest = "INVALID_REQUEST_ERROR"
)

var (
	errAccessTokenRequired = errors.New("square access token is required")
	errLocationRequired    = errors.New("square location id is required")
	errInvalidSquareEnv    = fmt.Errorf("square environment must be %q or %q", sandboxEnv, productionEnv)
	errLoggerRequired      = errors.New("square logger is required")
)

var baseURLs = map[string]string{
	sandboxEnv:    "https://connect.squareupsandbox.com",
	productionEnv: "https://connect.squareup.com",
}

type paymentsAPI interface {
	Create(ctx context.Context, request *sq.CreatePaymentRequest, opts ...sqoption.RequestOption) (*sq.CreatePaymentResponse, error)
}

// Client exposes Square payment primitives with centralized auth, logging,
// idempotency and error mapping.
type Client struct {
	payments    paymentsAPI
	locationID  string
	environment string
	baseURL     string
	logger      *logger.Logger
}

// NewClient initializes the Square wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.SquareConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	accessToken := strings.TrimSpace(cfg.AccessToken)
	if accessToken == "" {
		return nil, errAccessTokenRequired
	}
	locationID := strings.TrimSpace(cfg.LocationID)
	if locationID == "" {
		return nil, errLocationRequired
	}

	baseURL := baseURLs[env]
	sdk := sqclient.NewClient(
		sqoption.WithBaseURL(baseURL),
		sqoption.WithToken(accessToken),
	)

	c := &Client{
		payments:    sdk.Payments,
		locationID:  locationID,
		environment: env,
		baseURL:     baseURL,
		logger:      logg,
	}

	logg.Info(logg.WithField(ctx, "environment", env), "square client initialized")
	return c, nil
}

// Environment reports the normalized Square environment.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// LocationID returns the seller location charges are booked against.
func (c *Client) LocationID() string {
	if c == nil {
		return ""
	}
	return c.locationID
}

// NewIdempotencyKey returns a unique key for Square operations.
func (c *Client) NewIdempotencyKey(prefix string) string {
	key := strings.TrimSpace(prefix)
	if key == "" {
		key = "hh"
	}
	return fmt.Sprintf("%s-%s", key, uuid.NewString())
}

// CreatePayment charges a wallet or gift card nonce and returns the Square
// payment. Failures are mapped to payment error codes.
func (c *Client) CreatePayment(ctx context.Context, params PaymentCreateParams) (*sq.Payment, error) {
	if c == nil || c.payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodePaymentGateway, "square client not initialized")
	}
	if strings.TrimSpace(params.LocationID) == "" {
		params.LocationID = c.locationID
	}
	req := params.toSquareRequest(c.ensureIdempotencyKey("payment.create", params.IdempotencyKey))
	c.log(ctx, "request", "create_payment", map[string]any{
		"location_id":  params.LocationID,
		"reference_id": params.ReferenceID,
		"amount":       params.AmountCents,
		"source_token": params.SourceID,
	})

	resp, err := c.payments.Create(ctx, req)
	if err != nil {
		c.log(ctx, "error", "create_payment", map[string]any{"error": err.Error()})
		return nil, c.mapSquareError(err, "create payment")
	}

	payment := resp.GetPayment()
	if payment == nil || payment.GetID() == nil {
		return nil, pkgerrors.New(pkgerrors.CodePaymentGateway, "square create payment returned no payment")
	}
	status := stringValue(payment.GetStatus())
	c.log(ctx, "response", "create_payment", map[string]any{
		"payment_id": stringValue(payment.GetID()),
		"status":     status,
	})
	if strings.EqualFold(status, "FAILED") || strings.EqualFold(status, "CANCELED") {
		return nil, pkgerrors.New(pkgerrors.CodePaymentDeclined, "square payment not completed").
			WithDetails(map[string]any{"decline_code": strings.ToLower(status)})
	}
	return payment, nil
}

func (c *Client) ensureIdempotencyKey(prefix, provided string) string {
	if strings.TrimSpace(provided) != "" {
		return provided
	}
	return c.NewIdempotencyKey(prefix)
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("square %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("square %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"card", "nonce", "token", "cvv", "cvc", "secret", "email", "phone"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func (c *Client) mapSquareError(err error, op string) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf("square %s failed", op)

	var apiErr *sqcore.APIError
	if errors.As(err, &apiErr) {
		code := domainCodeForStatus(apiErr.StatusCode)
		var details map[string]any
		for _, sqErr := range c.extractSquareErrors(apiErr) {
			if sqErr == nil {
				continue
			}
			if sqErr.Code == sq.ErrorCodeIdempotencyKeyReused {
				code = pkgerrors.CodePaymentInvalidRequest
				details = map[string]any{"reason": "idempotency_key_reused"}
				break
			}
			switch string(sqErr.Category) {
			case categoryPaymentMethod:
				code = pkgerrors.CodePaymentDeclined
				details = map[string]any{"decline_code": strings.ToLower(string(sqErr.Code))}
			case categoryAuthentication:
				code = pkgerrors.CodePaymentAuthFailed
			case categoryRateLimit:
				code = pkgerrors.CodePaymentRateLimited
			case categoryInvalidRequest:
				code = pkgerrors.CodePaymentInvalidRequest
			default:
				continue
			}
			break
		}
		wrapped := pkgerrors.Wrap(code, err, message)
		if details != nil {
			wrapped = wrapped.WithDetails(details)
		}
		return wrapped
	}

	if isNetworkError(err) {
		return pkgerrors.Wrap(pkgerrors.CodePaymentNetwork, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodePaymentGateway, err, message)
}

func (c *Client) extractSquareErrors(apiErr *sqcore.APIError) []*sq.Error {
	if apiErr == nil {
		return nil
	}
	inner := apiErr.Unwrap()
	if inner == nil {
		return nil
	}
	raw := strings.TrimSpace(inner.Error())
	if raw == "" {
		return nil
	}
	var payload struct {
		Errors []*sq.Error `json:"errors"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	return payload.Errors
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.CodePaymentAuthFailed
	case http.StatusPaymentRequired:
		return pkgerrors.CodePaymentDeclined
	case http.StatusTooManyRequests:
		return pkgerrors.CodePaymentRateLimited
	case http.StatusRequestTimeout, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return pkgerrors.CodePaymentNetwork
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodePaymentInvalidRequest
		}
		return pkgerrors.CodePaymentGateway
	}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func stringValue(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = sandboxEnv
	}
	switch env {
	case sandboxEnv, productionEnv:
		return env, nil
	default:
		return "", errInvalidSquareEnv
	}
}
