// Package config loads the application settings and the provider
// profile file.
package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

// Registry exposes the billing providers declared in the profile file:
// one ini section per provider slug, with optional timezone and unit
// keys.
type Registry interface {
	GetProviders(ctx context.Context) ([]domain.Provider, error)
	GetProvider(ctx context.Context, slug string) (*domain.Provider, error)
}

type providerRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load provider profiles: %w", err)
	}
	return &providerRegistry{cfg: cfg}, nil
}

func (pr *providerRegistry) GetProviders(_ context.Context) ([]domain.Provider, error) {
	var providers []domain.Provider
	for _, section := range pr.cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		providers = append(providers, providerFromSection(section))
	}
	return providers, nil
}

func (pr *providerRegistry) GetProvider(_ context.Context, slug string) (*domain.Provider, error) {
	if !pr.cfg.HasSection(slug) {
		return nil, fmt.Errorf("provider %q not found", slug)
	}
	provider := providerFromSection(pr.cfg.Section(slug))
	return &provider, nil
}

func providerFromSection(section *ini.Section) domain.Provider {
	return domain.Provider{
		Slug:     section.Name(),
		Timezone: section.Key("timezone").String(),
		Unit:     section.Key("unit").String(),
	}
}
