// Package account resolves which billing providers a run reports on.
package account

import (
	"context"
	"fmt"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/services/config"
)

type Explorer interface {
	// ListProviders returns every registered provider, restricted to the
	// given slugs when non-empty.
	ListProviders(ctx context.Context, slugs []string) ([]domain.Provider, error)
	GetProvider(ctx context.Context, slug string) (*domain.Provider, error)
}

type providerExplorer struct {
	registry config.Registry
}

func NewExplorer(registry config.Registry) Explorer {
	return &providerExplorer{registry: registry}
}

func (e *providerExplorer) ListProviders(ctx context.Context, slugs []string) ([]domain.Provider, error) {
	providers, err := e.registry.GetProviders(ctx)
	if err != nil {
		return nil, err
	}
	if len(slugs) == 0 {
		return providers, nil
	}

	wanted := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = struct{}{}
	}

	var selected []domain.Provider
	for _, provider := range providers {
		if _, ok := wanted[provider.Slug]; ok {
			selected = append(selected, provider)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no registered provider matches %v", slugs)
	}
	return selected, nil
}

func (e *providerExplorer) GetProvider(ctx context.Context, slug string) (*domain.Provider, error) {
	return e.registry.GetProvider(ctx, slug)
}
