package orders

import (
	"context"

	"posflow/internal/platform/models"
)

// Adapter fetches a canonical order snapshot from a provider. A (nil, nil)
// return means the provider cannot retrieve the order; errors are transient
// fetch failures.
type Adapter interface {
	FetchOrder(ctx context.Context, externalOrderID string) (*CanonicalOrder, error)
}

// AdapterFactory builds an adapter from resolved integration credentials. The
// environment selection already happened when the integration was looked up.
type AdapterFactory func(integration *models.ProviderIntegration) (Adapter, error)

type Registry struct {
	factories map[string]AdapterFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]AdapterFactory)}
}

func (r *Registry) Register(provider string, factory AdapterFactory) {
	r.factories[provider] = factory
}

// Adapter returns nil when no factory is registered for the provider; the
// caller treats that as a permanent classification, not a failure.
func (r *Registry) Adapter(provider string, integration *models.ProviderIntegration) (Adapter, error) {
	factory, ok := r.factories[provider]
	if !ok {
		return nil, nil
	}
	return factory(integration)
}
