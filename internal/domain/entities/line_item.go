package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidLineItemKind = errors.New("invalid line item kind")

// LineItemKind classifies an estimate line. Discounts are stored with a positive
// unit price; the sign is applied by LineTotal.
type LineItemKind string

const (
	LineItemKindLabor    LineItemKind = "labor"
	LineItemKindPart     LineItemKind = "part"
	LineItemKindFee      LineItemKind = "fee"
	LineItemKindDiscount LineItemKind = "discount"
	LineItemKindMileage  LineItemKind = "mileage"
	LineItemKindCallout  LineItemKind = "callout"
)

func ParseLineItemKind(s string) (LineItemKind, error) {
	k := LineItemKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLineItemKind, s)
	}
	return k, nil
}

func (k LineItemKind) Valid() bool {
	switch k {
	case LineItemKindLabor, LineItemKindPart, LineItemKindFee,
		LineItemKindDiscount, LineItemKindMileage, LineItemKindCallout:
		return true
	}
	return false
}

type LineItem struct {
	Kind        LineItemKind    `json:"kind"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
}

// LineTotal is quantity x unit price, negated for discounts. It is not rounded.
func (li LineItem) LineTotal() decimal.Decimal {
	total := li.Quantity.Mul(li.UnitPrice)
	if li.Kind == LineItemKindDiscount {
		return total.Neg()
	}
	return total
}
