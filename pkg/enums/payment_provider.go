package enums

import "fmt"

// PaymentProvider identifies the external processor that issued a charge.
type PaymentProvider string

const (
	PaymentProviderStripe PaymentProvider = "stripe"
	PaymentProviderSquare PaymentProvider = "square"
)

var validPaymentProviders = []PaymentProvider{
	PaymentProviderStripe,
	PaymentProviderSquare,
}

func (p PaymentProvider) String() string {
	return string(p)
}

func (p PaymentProvider) IsValid() bool {
	for _, candidate := range validPaymentProviders {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParsePaymentProvider(value string) (PaymentProvider, error) {
	for _, candidate := range validPaymentProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment provider %q", value)
}
