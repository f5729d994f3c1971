package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
		{code: CodeNoActiveOrder, status: http.StatusNotFound, publicMsg: "You do not have an active order"},
		{code: CodeInvalidPaymentOption, status: http.StatusBadRequest, publicMsg: "Invalid Payment Option Selected", detailsOK: true},
		{code: CodeAlreadySettled, status: http.StatusConflict, publicMsg: "This order has already been placed"},
		{code: CodePaymentDeclined, status: http.StatusPaymentRequired, publicMsg: "Your payment was declined", detailsOK: true},
		{code: CodePaymentRateLimited, status: http.StatusTooManyRequests, publicMsg: "Rate Limit Error", retryable: true},
		{code: CodePaymentInvalidRequest, status: http.StatusBadRequest, publicMsg: "Invalid Parameters"},
		{code: CodePaymentAuthFailed, status: http.StatusBadGateway, publicMsg: "Not Authenticated"},
		{code: CodePaymentNetwork, status: http.StatusServiceUnavailable, publicMsg: "Network Error", retryable: true},
		{code: CodePaymentGateway, status: http.StatusBadGateway, publicMsg: "Something went wrong. You were not charged"},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestPaymentCodesHaveDistinctMessages(t *testing.T) {
	codes := []Code{
		CodePaymentDeclined,
		CodePaymentRateLimited,
		CodePaymentInvalidRequest,
		CodePaymentAuthFailed,
		CodePaymentNetwork,
		CodePaymentGateway,
	}
	seen := map[string]Code{}
	for _, code := range codes {
		msg := MetadataFor(code).PublicMessage
		if prev, ok := seen[msg]; ok {
			t.Fatalf("codes %s and %s share public message %q", prev, code, msg)
		}
		seen[msg] = code
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndHasCode(t *testing.T) {
	err := New(CodeNoActiveOrder, "no open order")
	if got := As(err); got == nil || got.Code() != CodeNoActiveOrder {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if !HasCode(err, CodeNoActiveOrder) {
		t.Fatalf("expected HasCode to match")
	}
	if HasCode(stdErrors.New("plain"), CodeNoActiveOrder) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := Wrap(CodeDependency, cause, "persist order")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %d", len(dump.Chain))
	}
	if dump.PGCode != "" {
		t.Fatalf("expected no pg code for plain errors")
	}
}
