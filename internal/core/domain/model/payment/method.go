package payment

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Method is how the customer pays.
type Method string

const (
	Cash         Method = "CASH"
	CreditCard   Method = "CREDIT_CARD"
	DebitCard    Method = "DEBIT_CARD"
	MobileMoney  Method = "MOBILE_MONEY"
	BankTransfer Method = "BANK_TRANSFER"
)

var methods = []Method{Cash, CreditCard, DebitCard, MobileMoney, BankTransfer}

// ParseMethod resolves a method name, ignoring case.
func ParseMethod(name string) (Method, error) {
	candidate := Method(strings.ToUpper(strings.TrimSpace(name)))
	if err := candidate.Validate(); err != nil {
		return "", err
	}
	return candidate, nil
}

func (m Method) Validate() error {
	for _, known := range methods {
		if m == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
}

func (m Method) String() string {
	return string(m)
}
