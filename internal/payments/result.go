package payments

import (
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
)

// Kind is the closed set of charge outcomes.
type Kind string

const (
	KindSuccess             Kind = "success"
	KindDeclined            Kind = "declined"
	KindRateLimited         Kind = "rate_limited"
	KindInvalidRequest      Kind = "invalid_request"
	KindAuthFailed          Kind = "auth_failed"
	KindNetworkError        Kind = "network_error"
	KindUnknownGatewayError Kind = "unknown_gateway_error"
)

var codeByKind = map[Kind]pkgerrors.Code{
	KindDeclined:            pkgerrors.CodePaymentDeclined,
	KindRateLimited:         pkgerrors.CodePaymentRateLimited,
	KindInvalidRequest:      pkgerrors.CodePaymentInvalidRequest,
	KindAuthFailed:          pkgerrors.CodePaymentAuthFailed,
	KindNetworkError:        pkgerrors.CodePaymentNetwork,
	KindUnknownGatewayError: pkgerrors.CodePaymentGateway,
}

// Result is the classified outcome of one charge attempt. ChargeID is set
// only on success and DeclineCode only on decline.
type Result struct {
	Kind        Kind
	Provider    enums.PaymentProvider
	Method      enums.PaymentMethod
	ChargeID    string
	DeclineCode string
	AmountCents int64
	Currency    string
}

// Succeeded reports whether the processor captured the charge.
func (r Result) Succeeded() bool {
	return r.Kind == KindSuccess && r.ChargeID != ""
}

// Err converts a failed result into the typed error shown to the shopper.
// The message is the code's public message and never carries processor text.
func (r Result) Err() *pkgerrors.Error {
	if r.Succeeded() {
		return nil
	}
	code, ok := codeByKind[r.Kind]
	if !ok {
		code = pkgerrors.CodePaymentGateway
	}
	err := pkgerrors.New(code, pkgerrors.MetadataFor(code).PublicMessage)
	if r.Kind == KindDeclined && r.DeclineCode != "" {
		err = err.WithDetails(map[string]any{"decline_code": r.DeclineCode})
	}
	return err
}

// kindForCode maps gateway error codes onto outcomes.
func kindForCode(code pkgerrors.Code) Kind {
	switch code {
	case pkgerrors.CodePaymentDeclined:
		return KindDeclined
	case pkgerrors.CodePaymentRateLimited:
		return KindRateLimited
	case pkgerrors.CodePaymentInvalidRequest:
		return KindInvalidRequest
	case pkgerrors.CodePaymentAuthFailed:
		return KindAuthFailed
	case pkgerrors.CodePaymentNetwork:
		return KindNetworkError
	default:
		return KindUnknownGatewayError
	}
}
