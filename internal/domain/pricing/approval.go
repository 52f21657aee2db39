package pricing

import (
	"autoshop_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ChangeEpsilon is the largest difference between two money amounts still
// treated as equal when deciding whether an approved estimate changed.
var ChangeEpsilon = decimal.RequireFromString("0.009")

// ApprovalSnapshot is the persisted state the guard compares against.
type ApprovalSnapshot struct {
	Status    entities.EstimateStatus
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Version   int
}

func SnapshotOf(e entities.Estimate) ApprovalSnapshot {
	return ApprovalSnapshot{
		Status:    e.Status,
		Subtotal:  e.Subtotal,
		TaxAmount: e.TaxAmount,
		Total:     e.Total,
		Version:   e.Version,
	}
}

type DecisionKind int

const (
	DecisionNoChange DecisionKind = iota
	DecisionDemote
)

func (k DecisionKind) String() string {
	if k == DecisionDemote {
		return "demote"
	}
	return "no_change"
}

// Decision is what the guard wants done to the estimate being saved.
// Everything except Kind is only meaningful for DecisionDemote.
type Decision struct {
	Kind             DecisionKind
	NewStatus        entities.EstimateStatus
	NewVersion       int
	ClearApprovedAt  bool
	ClearSignatureID bool
	// Event has no ID, EntityID or timestamp; the caller fills them in.
	Event *entities.AuditEvent
}

// EvaluateApproval decides whether an edit revokes a customer's approval.
// Only approved estimates are guarded, and only a move of more than
// ChangeEpsilon in subtotal, tax or total counts as a change.
func EvaluateApproval(previous ApprovalSnapshot, next Totals) Decision {
	if previous.Status != entities.EstimateStatusApproved {
		return Decision{Kind: DecisionNoChange}
	}

	changed := moved(previous.Subtotal, next.Subtotal) ||
		moved(previous.TaxAmount, next.TaxAmount) ||
		moved(previous.Total, next.Total)
	if !changed {
		return Decision{Kind: DecisionNoChange}
	}

	return Decision{
		Kind:             DecisionDemote,
		NewStatus:        entities.EstimateStatusNeedsReapproval,
		NewVersion:       previous.Version + 1,
		ClearApprovedAt:  true,
		ClearSignatureID: true,
		Event: &entities.AuditEvent{
			Entity: entities.AuditEntityEstimate,
			Action: entities.AuditActionApprovalRevoked,
			Actor:  entities.AuditActorAdmin,
			Meta: map[string]any{
				"reason":     "edited",
				"prevStatus": string(previous.Status),
			},
		},
	}
}

// Apply mutates e according to d. NoChange leaves e untouched.
func (d Decision) Apply(e *entities.Estimate) {
	if d.Kind != DecisionDemote {
		return
	}
	e.Status = d.NewStatus
	e.Version = d.NewVersion
	if d.ClearApprovedAt {
		e.ApprovedAt = nil
	}
	if d.ClearSignatureID {
		e.SignatureID = ""
	}
}

func moved(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(ChangeEpsilon)
}
