package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateStatus represents the lifecycle of an estimate.
//
// Domain notes:
//   - Estimates start as drafts and move forward through explicit admin actions.
//   - needs_reapproval is never requested directly: it is set when an approved
//     estimate is edited and its totals change.
type EstimateStatus string

const (
	EstimateStatusDraft           EstimateStatus = "draft"
	EstimateStatusSent            EstimateStatus = "sent"
	EstimateStatusApproved        EstimateStatus = "approved"
	EstimateStatusDeclined        EstimateStatus = "declined"
	EstimateStatusExpired         EstimateStatus = "expired"
	EstimateStatusNeedsReapproval EstimateStatus = "needs_reapproval"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusApproved,
		EstimateStatusDeclined, EstimateStatusExpired, EstimateStatusNeedsReapproval:
		return true
	}
	return false
}

// Job is a named group of line items inside an estimate, usually one repair
// (e.g. "Front brakes") optionally assigned to a technician.
type Job struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TechnicianID string     `json:"technician_id,omitempty"`
	Items        []LineItem `json:"items"`
}

// Estimate is the quote presented to a customer for a repair order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (repair_order_id-index): repair_order_id
//
// Monetary representation:
//   - Subtotal, TaxAmount, Total and MileageTotal are derived on every save and
//     rounded to cents. Jobs (and their lines) are replaced wholesale.
//   - Version only moves when an approved estimate is demoted by an edit.
type Estimate struct {
	ID            string `json:"id"`
	RepairOrderID string `json:"repair_order_id"`
	CustomerID    string `json:"customer_id"`
	VehicleID     string `json:"vehicle_id,omitempty"`
	Jobs          []Job  `json:"jobs"`

	TaxRate      decimal.Decimal `json:"tax_rate"`
	CalloutFee   decimal.Decimal `json:"callout_fee"`
	MileageMiles decimal.Decimal `json:"mileage_miles"`
	MileageRate  decimal.Decimal `json:"mileage_rate"`
	MileageTotal decimal.Decimal `json:"mileage_total"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`

	Status      EstimateStatus `json:"status"`
	Version     int            `json:"version"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	SignatureID string         `json:"signature_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// LineItems flattens the lines of every job, in job order.
func (e Estimate) LineItems() []LineItem {
	n := 0
	for _, j := range e.Jobs {
		n += len(j.Items)
	}
	items := make([]LineItem, 0, n)
	for _, j := range e.Jobs {
		items = append(items, j.Items...)
	}
	return items
}

// ClearApproval drops the customer's approval metadata.
func (e *Estimate) ClearApproval() {
	e.ApprovedAt = nil
	e.SignatureID = ""
}
