package interfaces

import (
	"context"
	"errors"
	"time"

	"autoshop_billing/internal/domain/entities"
)

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/mock_estimate_repository.go -package=mock_interfaces

// ErrConcurrentModification is returned by Save when the stored estimate is no
// longer the revision the caller read.
var ErrConcurrentModification = errors.New("estimate was modified concurrently")

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// The billing-service must be able to:
//   - create an estimate for a repair order (one estimate per repair order)
//   - replace an estimate (jobs, lines, totals, status) together with the audit
//     events produced by that change, atomically
//
// Lookups return a zero Estimate (empty ID) when nothing is found.
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate, events []entities.AuditEvent) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	GetByRepairOrderID(ctx context.Context, repairOrderID string) (entities.Estimate, error)
	// Save writes e only if the stored revision still has prevUpdatedAt.
	Save(ctx context.Context, e entities.Estimate, prevUpdatedAt time.Time, events []entities.AuditEvent) (entities.Estimate, error)
}
