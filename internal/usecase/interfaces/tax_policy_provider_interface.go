package interfaces

import (
	"context"

	"autoshop_billing/internal/domain/pricing"
)

//go:generate mockgen -source=tax_policy_provider_interface.go -destination=mocks/mock_tax_policy_provider.go -package=mock_interfaces

// ITaxPolicyProvider returns the shop's current "tax applies to" setting.
// It is consulted on every computation; implementations must not cache.
type ITaxPolicyProvider interface {
	TaxPolicy(ctx context.Context) (pricing.TaxPolicy, error)
}
