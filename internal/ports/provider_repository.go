package ports

import (
	"context"

	"visit-planner-service/internal/domain"
)

// Port: a boundary for Provider persistence. Providers are never deleted
// implicitly; patient references to a deleted provider are left dangling and
// tolerated by the assignment resolver.
type ProviderRepository interface {
	ListProviders(ctx context.Context) ([]*domain.Provider, error)
	GetProvider(ctx context.Context, id int) (*domain.Provider, error)
	CreateProvider(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
	UpdateProvider(ctx context.Context, p *domain.Provider) error
	DeleteProvider(ctx context.Context, id int) error
}
