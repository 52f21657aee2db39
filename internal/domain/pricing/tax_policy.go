// Package pricing holds the estimate money rules: which lines are taxed, how
// totals are derived and when an approved estimate must be re-approved.
//
// Everything here is pure: no I/O, no clock, no configuration lookups. Callers
// pass the tax policy they read for the current request.
package pricing

import (
	"errors"
	"strings"

	"autoshop_billing/internal/domain/entities"
)

var ErrInvalidTaxPolicy = errors.New("invalid tax policy")

// TaxPolicy is the shop-wide "tax applies to" setting.
type TaxPolicy string

const (
	TaxPolicyPartsAndLabor TaxPolicy = "parts_labor"
	TaxPolicyPartsOnly     TaxPolicy = "parts_only"
)

func ParseTaxPolicy(s string) (TaxPolicy, error) {
	switch p := TaxPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case TaxPolicyPartsAndLabor, TaxPolicyPartsOnly:
		return p, nil
	}
	return "", ErrInvalidTaxPolicy
}

// IsTaxable reports whether a line participates in the taxable base.
// An unchecked taxable flag always wins; under parts_only only parts qualify.
func IsTaxable(kind entities.LineItemKind, taxable bool, policy TaxPolicy) bool {
	if !taxable {
		return false
	}
	if policy == TaxPolicyPartsOnly {
		return kind == entities.LineItemKindPart
	}
	return true
}
