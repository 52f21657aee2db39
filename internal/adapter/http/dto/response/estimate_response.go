package response

import (
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/domain/pricing"
)

// Money is rendered as fixed two-place strings ("155.40") so clients never
// round-trip amounts through floats.

type LineItemResponse struct {
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	Taxable     bool   `json:"taxable"`
}

type JobResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	TechnicianID string             `json:"technician_id,omitempty"`
	Items        []LineItemResponse `json:"items"`
}

type EstimateResponse struct {
	ID            string        `json:"id"`
	EstimateID    string        `json:"estimate_id"`
	RepairOrderID string        `json:"repair_order_id"`
	CustomerID    string        `json:"customer_id"`
	VehicleID     string        `json:"vehicle_id,omitempty"`
	Jobs          []JobResponse `json:"jobs"`

	TaxRate      string `json:"tax_rate"`
	CalloutFee   string `json:"callout_fee"`
	MileageMiles string `json:"mileage_miles"`
	MileageRate  string `json:"mileage_rate"`
	MileageTotal string `json:"mileage_total"`
	Subtotal     string `json:"subtotal"`
	TaxAmount    string `json:"tax_amount"`
	Total        string `json:"total"`

	Status      string     `json:"status"`
	Version     int        `json:"version"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	SignatureID string     `json:"signature_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	jobs := make([]JobResponse, 0, len(e.Jobs))
	for _, j := range e.Jobs {
		items := make([]LineItemResponse, 0, len(j.Items))
		for _, it := range j.Items {
			items = append(items, LineItemResponse{
				Kind:        string(it.Kind),
				Description: it.Description,
				Quantity:    it.Quantity.String(),
				UnitPrice:   it.UnitPrice.StringFixed(pricing.MoneyPlaces),
				LineTotal:   it.LineTotal().StringFixed(pricing.MoneyPlaces),
				Taxable:     it.Taxable,
			})
		}
		jobs = append(jobs, JobResponse{
			ID:           j.ID,
			Name:         j.Name,
			TechnicianID: j.TechnicianID,
			Items:        items,
		})
	}

	return EstimateResponse{
		ID:            e.ID,
		EstimateID:    e.ID,
		RepairOrderID: e.RepairOrderID,
		CustomerID:    e.CustomerID,
		VehicleID:     e.VehicleID,
		Jobs:          jobs,
		TaxRate:       e.TaxRate.String(),
		CalloutFee:    e.CalloutFee.StringFixed(pricing.MoneyPlaces),
		MileageMiles:  e.MileageMiles.String(),
		MileageRate:   e.MileageRate.String(),
		MileageTotal:  e.MileageTotal.StringFixed(pricing.MoneyPlaces),
		Subtotal:      e.Subtotal.StringFixed(pricing.MoneyPlaces),
		TaxAmount:     e.TaxAmount.StringFixed(pricing.MoneyPlaces),
		Total:         e.Total.StringFixed(pricing.MoneyPlaces),
		Status:        string(e.Status),
		Version:       e.Version,
		ApprovedAt:    e.ApprovedAt,
		SignatureID:   e.SignatureID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type TotalsResponse struct {
	Subtotal     string `json:"subtotal"`
	TaxableBase  string `json:"taxable_base"`
	TaxAmount    string `json:"tax_amount"`
	Total        string `json:"total"`
	MileageTotal string `json:"mileage_total"`
}

func FromTotals(t pricing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:     t.Subtotal.StringFixed(pricing.MoneyPlaces),
		TaxableBase:  t.TaxableBase.String(),
		TaxAmount:    t.TaxAmount.StringFixed(pricing.MoneyPlaces),
		Total:        t.Total.StringFixed(pricing.MoneyPlaces),
		MileageTotal: t.MileageTotal.StringFixed(pricing.MoneyPlaces),
	}
}

type AuditEventResponse struct {
	ID        string         `json:"id"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func FromAuditEvent(e entities.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:        e.ID,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Action:    e.Action,
		Actor:     e.Actor,
		Meta:      e.Meta,
		CreatedAt: e.CreatedAt,
	}
}

func FromAuditEvents(events []entities.AuditEvent) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromAuditEvent(e))
	}
	return out
}
