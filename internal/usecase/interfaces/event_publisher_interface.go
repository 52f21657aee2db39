package interfaces

import (
	"context"

	"autoshop_billing/internal/domain/entities"
)

//go:generate mockgen -source=event_publisher_interface.go -destination=mocks/mock_event_publisher.go -package=mock_interfaces

// IEventPublisher fans committed audit events out to other services.
type IEventPublisher interface {
	Publish(ctx context.Context, events ...entities.AuditEvent) error
}
