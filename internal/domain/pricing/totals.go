package pricing

import (
	"autoshop_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept at the monetary boundary.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

type TotalsInput struct {
	Items          []entities.LineItem
	Policy         TaxPolicy
	TaxRatePercent decimal.Decimal
	CalloutFee     decimal.Decimal
	MileageMiles   decimal.Decimal
	MileageRate    decimal.Decimal
}

// Totals is the derived money of an estimate. Subtotal, TaxAmount, Total and
// MileageTotal are rounded to cents; TaxableBase is the unrounded base.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxableBase  decimal.Decimal `json:"taxable_base"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
	MileageTotal decimal.Decimal `json:"mileage_total"`
}

// Compute reduces the lines plus callout and mileage addends into totals.
//
// Discount lines lower the subtotal but never the taxable base, and neither the
// callout fee nor mileage is taxed. Intermediate sums stay unrounded; rounding
// is half away from zero at two places. The tax rate is not validated here.
func Compute(in TotalsInput) Totals {
	subtotal := decimal.Zero
	taxableBase := decimal.Zero

	for _, item := range in.Items {
		lineTotal := item.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		if IsTaxable(item.Kind, item.Taxable, in.Policy) {
			taxableBase = taxableBase.Add(decimal.Max(decimal.Zero, lineTotal))
		}
	}

	mileageTotal := decimal.Zero
	if in.MileageRate.IsPositive() && in.MileageMiles.IsPositive() {
		mileageTotal = in.MileageMiles.Mul(in.MileageRate)
	}

	if in.CalloutFee.IsPositive() {
		subtotal = subtotal.Add(in.CalloutFee)
	}
	if mileageTotal.IsPositive() {
		subtotal = subtotal.Add(mileageTotal)
	}

	taxAmount := taxableBase.Mul(in.TaxRatePercent).Div(hundred).Round(MoneyPlaces)

	return Totals{
		Subtotal:     subtotal.Round(MoneyPlaces),
		TaxableBase:  taxableBase,
		TaxAmount:    taxAmount,
		Total:        subtotal.Add(taxAmount).Round(MoneyPlaces),
		MileageTotal: mileageTotal.Round(MoneyPlaces),
	}
}
