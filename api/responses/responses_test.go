package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/types"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return body
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessStatus(w, http.StatusCreated, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}
	body := decodeError(t, w)
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "bad input" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}
	body := decodeError(t, w)
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestWriteErrorPaymentCodesUsePublicMessages(t *testing.T) {
	cases := []struct {
		code   pkgerrors.Code
		status int
	}{
		{pkgerrors.CodePaymentDeclined, http.StatusPaymentRequired},
		{pkgerrors.CodePaymentRateLimited, http.StatusTooManyRequests},
		{pkgerrors.CodePaymentInvalidRequest, http.StatusBadRequest},
		{pkgerrors.CodePaymentAuthFailed, http.StatusBadGateway},
		{pkgerrors.CodePaymentNetwork, http.StatusServiceUnavailable},
		{pkgerrors.CodePaymentGateway, http.StatusBadGateway},
		{pkgerrors.CodeNoActiveOrder, http.StatusNotFound},
		{pkgerrors.CodeAlreadySettled, http.StatusConflict},
	}
	seen := map[string]pkgerrors.Code{}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(context.Background(), nil, w, pkgerrors.New(tc.code, "processor said: card 4242 rejected"))

		if w.Code != tc.status {
			t.Fatalf("%s: expected status %d got %d", tc.code, tc.status, w.Code)
		}
		body := decodeError(t, w)
		if body.Error.Message != pkgerrors.MetadataFor(tc.code).PublicMessage {
			t.Fatalf("%s: leaked internal message %q", tc.code, body.Error.Message)
		}
		if prev, ok := seen[body.Error.Message]; ok {
			t.Fatalf("%s and %s share message %q", prev, tc.code, body.Error.Message)
		}
		seen[body.Error.Message] = tc.code
	}
}

func TestWriteErrorDeclineDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodePaymentDeclined, "declined").
		WithDetails(map[string]any{"decline_code": "insufficient_funds"})
	WriteError(context.Background(), nil, w, err)

	body := decodeError(t, w)
	details, ok := body.Error.Details.(map[string]any)
	if !ok || details["decline_code"] != "insufficient_funds" {
		t.Fatalf("expected decline code detail, got %v", body.Error.Details)
	}
}
