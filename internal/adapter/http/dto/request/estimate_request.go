package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

// Money is a monetary or quantity field as sent by the client: a JSON number
// or a string ("12.50"). The text is kept as-is and only parsed by
// ToEstimateInput, so a malformed amount is reported as an invalid monetary
// value naming the field.
type Money string

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*m = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Money(s)
	default:
		*m = Money(b)
	}
	return nil
}

// Decimal parses the value; a missing value is zero.
func (m Money) Decimal(field string) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(m))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, s, usecase.ErrInvalidMonetaryValue)
	}
	return d, nil
}

// LineItemRequest is one estimate line as sent by the admin screen.
type LineItemRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Description string `json:"description"`
	Quantity    Money  `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	Taxable     bool   `json:"taxable"`
}

type JobRequest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	TechnicianID string            `json:"technician_id"`
	Items        []LineItemRequest `json:"items"`
}

// EstimateRequest is the full body of an estimate create/update/preview.
// On update, repair_order_id is ignored.
type EstimateRequest struct {
	RepairOrderID string       `json:"repair_order_id"`
	CustomerID    string       `json:"customer_id"`
	VehicleID     string       `json:"vehicle_id"`
	TaxRate       Money        `json:"tax_rate"`
	CalloutFee    Money        `json:"callout_fee"`
	MileageMiles  Money        `json:"mileage_miles"`
	MileageRate   Money        `json:"mileage_rate"`
	Jobs          []JobRequest `json:"jobs"`
}

// ToEstimateInput parses line kinds and money fields into typed values. Range
// checks (no negatives) are left to the usecase so that every caller goes
// through the same validation.
func (r EstimateRequest) ToEstimateInput() (usecase.EstimateInput, error) {
	jobs := make([]usecase.JobInput, 0, len(r.Jobs))
	for j, job := range r.Jobs {
		items := make([]entities.LineItem, 0, len(job.Items))
		for i, it := range job.Items {
			path := fmt.Sprintf("jobs[%d].items[%d]", j, i)
			kind, err := entities.ParseLineItemKind(it.Kind)
			if err != nil {
				return usecase.EstimateInput{}, fmt.Errorf("%s: %w", path, err)
			}
			qty, err := it.Quantity.Decimal(path + ".quantity")
			if err != nil {
				return usecase.EstimateInput{}, err
			}
			price, err := it.UnitPrice.Decimal(path + ".unit_price")
			if err != nil {
				return usecase.EstimateInput{}, err
			}
			items = append(items, entities.LineItem{
				Kind:        kind,
				Description: strings.TrimSpace(it.Description),
				Quantity:    qty,
				UnitPrice:   price,
				Taxable:     it.Taxable,
			})
		}
		jobs = append(jobs, usecase.JobInput{
			ID:           job.ID,
			Name:         job.Name,
			TechnicianID: job.TechnicianID,
			Items:        items,
		})
	}

	in := usecase.EstimateInput{
		RepairOrderID: r.RepairOrderID,
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		Jobs:          jobs,
	}
	for _, f := range []struct {
		name  string
		value Money
		dst   *decimal.Decimal
	}{
		{"tax_rate", r.TaxRate, &in.TaxRate},
		{"callout_fee", r.CalloutFee, &in.CalloutFee},
		{"mileage_miles", r.MileageMiles, &in.MileageMiles},
		{"mileage_rate", r.MileageRate, &in.MileageRate},
	} {
		d, err := f.value.Decimal(f.name)
		if err != nil {
			return usecase.EstimateInput{}, err
		}
		*f.dst = d
	}
	return in, nil
}

type ApproveEstimateRequest struct {
	SignatureID string `json:"signature_id"`
}
