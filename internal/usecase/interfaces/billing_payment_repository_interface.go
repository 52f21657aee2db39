package interfaces

import (
	"context"

	"autoshop_billing/internal/domain/entities"
)

//go:generate mockgen -source=billing_payment_repository_interface.go -destination=mocks/mock_billing_payment_repository.go -package=mock_interfaces

// IBillingPaymentRepository abstracts DynamoDB persistence for BillingPayment.
type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error)
}
