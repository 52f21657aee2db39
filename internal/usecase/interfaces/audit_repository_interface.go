package interfaces

import (
	"context"

	"autoshop_billing/internal/domain/entities"
)

//go:generate mockgen -source=audit_repository_interface.go -destination=mocks/mock_audit_repository.go -package=mock_interfaces

// IAuditRepository reads the audit trail. Events are written by
// IEstimateRepository in the same transaction as the change they describe.
type IAuditRepository interface {
	ListByEntityID(ctx context.Context, entityID string) ([]entities.AuditEvent, error)
}
