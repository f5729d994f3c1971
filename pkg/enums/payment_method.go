package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod is the shopper's chosen way to settle an order at checkout.
type PaymentMethod string

const (
	PaymentMethodCardGateway        PaymentMethod = "card_gateway"
	PaymentMethodAlternatePayWallet PaymentMethod = "alternate_pay_wallet"
	PaymentMethodGiftCard           PaymentMethod = "gift_card"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCardGateway,
	PaymentMethodAlternatePayWallet,
	PaymentMethodGiftCard,
}

// legacyPaymentCodes maps the single-letter storefront form values.
var legacyPaymentCodes = map[string]PaymentMethod{
	"S": PaymentMethodCardGateway,
	"P": PaymentMethodAlternatePayWallet,
	"G": PaymentMethodGiftCard,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Provider returns the processor that settles charges for this method.
func (p PaymentMethod) Provider() PaymentProvider {
	switch p {
	case PaymentMethodCardGateway:
		return PaymentProviderStripe
	case PaymentMethodAlternatePayWallet, PaymentMethodGiftCard:
		return PaymentProviderSquare
	default:
		return ""
	}
}

// ParsePaymentMethod converts raw input into a PaymentMethod. Legacy form
// codes (S, P, G) are accepted alongside the canonical names.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	trimmed := strings.TrimSpace(value)
	if legacy, ok := legacyPaymentCodes[trimmed]; ok {
		return legacy, nil
	}
	for _, candidate := range validPaymentMethods {
		if string(candidate) == strings.ToLower(trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
