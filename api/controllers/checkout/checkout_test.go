package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	checkoutsvc "github.com/prakashthakuri/Happy-Hours/internal/checkout"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
)

type stubCheckoutService struct {
	input     checkoutsvc.Input
	directive *checkoutsvc.Directive
	err       error
}

func (s *stubCheckoutService) SubmitCheckout(ctx context.Context, userID uuid.UUID, input checkoutsvc.Input) (*checkoutsvc.Directive, error) {
	s.input = input
	return s.directive, s.err
}

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestCheckoutSubmitPassesRawInputToService(t *testing.T) {
	svc := &stubCheckoutService{directive: &checkoutsvc.Directive{
		OrderID:    uuid.New(),
		Method:     enums.PaymentMethodCardGateway,
		Provider:   enums.PaymentProviderStripe,
		NextAction: checkoutsvc.PaymentRoutePrefix + "card_gateway",
	}}
	body := `{"street_address":"1 Main St","country":"us","city":"Albany","zip":"12207","payment_option":"S"}`
	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, checkoutRequest(body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input.Country != "us" || svc.input.PaymentOption != "S" {
		t.Fatalf("unexpected input %+v", svc.input)
	}
	if !strings.Contains(resp.Body.String(), "/api/v1/payments/card_gateway") {
		t.Fatalf("expected next action in body: %s", resp.Body.String())
	}
}

func TestCheckoutSubmitRejectsUnknownFields(t *testing.T) {
	svc := &stubCheckoutService{}
	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, checkoutRequest(`{"street_address":"x","coupon":"FREE"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSubmitInvalidPaymentOption(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInvalidPaymentOption, "invalid payment option")}
	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, checkoutRequest(`{"payment_option":"X"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Invalid Payment Option Selected") {
		t.Fatalf("expected public message: %s", resp.Body.String())
	}
}
