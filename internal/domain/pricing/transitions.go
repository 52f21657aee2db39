package pricing

import (
	"errors"
	"fmt"

	"autoshop_billing/internal/domain/entities"
)

var ErrInvalidStatusTransition = errors.New("invalid estimate status transition")

// allowedTransitions lists the explicit admin/customer actions.
// needs_reapproval is never a target; only EvaluateApproval produces it.
var allowedTransitions = map[entities.EstimateStatus][]entities.EstimateStatus{
	entities.EstimateStatusDraft:           {entities.EstimateStatusSent, entities.EstimateStatusExpired},
	entities.EstimateStatusSent:            {entities.EstimateStatusApproved, entities.EstimateStatusDeclined, entities.EstimateStatusExpired},
	entities.EstimateStatusApproved:        {entities.EstimateStatusExpired},
	entities.EstimateStatusDeclined:        {entities.EstimateStatusSent, entities.EstimateStatusExpired},
	entities.EstimateStatusNeedsReapproval: {entities.EstimateStatusSent, entities.EstimateStatusApproved, entities.EstimateStatusDeclined, entities.EstimateStatusExpired},
	entities.EstimateStatusExpired:         {entities.EstimateStatusSent},
}

func CanTransition(from, to entities.EstimateStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to entities.EstimateStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}
	return nil
}
