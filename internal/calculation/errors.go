package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// InvalidInputError reports a rejected input value, such as a negative amount or an
// unknown rate type without an explicit rate
type InvalidInputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// UnresolvedClassificationError reports a PTKP classification code that is not in the table
type UnresolvedClassificationError struct {
	Code   string
	Reason string
}

func (e *UnresolvedClassificationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unresolved classification %q", e.Code)
	}
	return fmt.Sprintf("unresolved classification %q: %s", e.Code, e.Reason)
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &InvalidInputError{Field: field, Value: v.String(), Message: "must not be negative"}
	}
	return nil
}

func checkAmounts(amounts ...domain.NamedAmount) error {
	for _, a := range amounts {
		if err := requireNonNegative(a.Name, a.Amount); err != nil {
			return err
		}
	}
	return nil
}
