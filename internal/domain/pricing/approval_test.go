package pricing

import (
	"testing"
	"time"

	"autoshop_billing/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedSnapshot() ApprovalSnapshot {
	return ApprovalSnapshot{
		Status:    entities.EstimateStatusApproved,
		Subtotal:  d("100.00"),
		TaxAmount: d("8.00"),
		Total:     d("108.00"),
		Version:   1,
	}
}

func TestEvaluateApproval_ToleratesRoundingNoise(t *testing.T) {
	got := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("100.005"), TaxAmount: d("8.00"), Total: d("108.005")})
	assert.Equal(t, DecisionNoChange, got.Kind)
	assert.Nil(t, got.Event)

	atEpsilon := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("100.009"), TaxAmount: d("8.00"), Total: d("108.00")})
	assert.Equal(t, DecisionNoChange, atEpsilon.Kind)
}

func TestEvaluateApproval_DemotesOnMaterialChange(t *testing.T) {
	got := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("100.01"), TaxAmount: d("8.00"), Total: d("108.01")})

	require.Equal(t, DecisionDemote, got.Kind)
	assert.Equal(t, entities.EstimateStatusNeedsReapproval, got.NewStatus)
	assert.Equal(t, 2, got.NewVersion)
	assert.True(t, got.ClearApprovedAt)
	assert.True(t, got.ClearSignatureID)

	require.NotNil(t, got.Event)
	assert.Equal(t, "estimate", got.Event.Entity)
	assert.Equal(t, "approval_revoked", got.Event.Action)
	assert.Equal(t, "admin", got.Event.Actor)
	assert.Equal(t, map[string]any{"reason": "edited", "prevStatus": "approved"}, got.Event.Meta)
}

func TestEvaluateApproval_EachTotalIsCompared(t *testing.T) {
	taxOnly := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("100.00"), TaxAmount: d("8.50"), Total: d("108.00")})
	assert.Equal(t, DecisionDemote, taxOnly.Kind)

	totalOnly := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("100.00"), TaxAmount: d("8.00"), Total: d("107.90")})
	assert.Equal(t, DecisionDemote, totalOnly.Kind)

	lower := EvaluateApproval(approvedSnapshot(), Totals{Subtotal: d("90.00"), TaxAmount: d("7.20"), Total: d("97.20")})
	assert.Equal(t, DecisionDemote, lower.Kind)
}

func TestEvaluateApproval_IgnoresNonApprovedEstimates(t *testing.T) {
	next := Totals{Subtotal: d("500"), TaxAmount: d("40"), Total: d("540")}
	for _, status := range []entities.EstimateStatus{
		entities.EstimateStatusDraft,
		entities.EstimateStatusSent,
		entities.EstimateStatusDeclined,
		entities.EstimateStatusExpired,
		entities.EstimateStatusNeedsReapproval,
	} {
		prev := approvedSnapshot()
		prev.Status = status
		assert.Equal(t, DecisionNoChange, EvaluateApproval(prev, next).Kind, "status %s", status)
	}
}

func TestDecision_Apply(t *testing.T) {
	approvedAt := time.Now().UTC()
	e := entities.Estimate{
		Status:      entities.EstimateStatusApproved,
		Subtotal:    d("100.00"),
		TaxAmount:   d("8.00"),
		Total:       d("108.00"),
		Version:     3,
		ApprovedAt:  &approvedAt,
		SignatureID: "sig-9",
	}

	keep := EvaluateApproval(SnapshotOf(e), Totals{Subtotal: d("100"), TaxAmount: d("8"), Total: d("108")})
	keep.Apply(&e)
	assert.Equal(t, entities.EstimateStatusApproved, e.Status)
	assert.Equal(t, "sig-9", e.SignatureID)

	demote := EvaluateApproval(SnapshotOf(e), Totals{Subtotal: d("120"), TaxAmount: d("9.60"), Total: d("129.60")})
	demote.Apply(&e)
	assert.Equal(t, entities.EstimateStatusNeedsReapproval, e.Status)
	assert.Equal(t, 4, e.Version)
	assert.Nil(t, e.ApprovedAt)
	assert.Empty(t, e.SignatureID)
	assert.Equal(t, "demote", demote.Kind.String())
}
