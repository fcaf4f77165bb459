package report

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fin-tools/revenue-pulse/pkg/models/api"
	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/services/account"
)

const defaultPeriod = domain.Weekly

// Builder assembles the comparison table for one provider.
type Builder interface {
	BuildReport(
		ctx context.Context,
		provider domain.Provider,
		at time.Time,
		g domain.Granularity,
	) (*domain.RevenueReport, error)
}

type Handler struct {
	accounts account.Explorer
	builder  Builder
}

func NewHandler(accounts account.Explorer, builder Builder) *Handler {
	return &Handler{
		accounts: accounts,
		builder:  builder,
	}
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	providers, err := h.accounts.ListProviders(ctx, nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list providers")
		http.Error(w, "failed to list providers", http.StatusInternalServerError)
		return
	}

	response := make([]api.Provider, 0, len(providers))
	for _, p := range providers {
		response = append(response, api.ProviderFromDomain(p))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode providers")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	slug := chi.URLParam(r, "provider")

	granularity := defaultPeriod
	if period := r.URL.Query().Get("period"); period != "" {
		parsed, err := domain.ParseGranularity(period)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		granularity = parsed
	}

	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid 'at' parameter, expected RFC3339", http.StatusBadRequest)
			return
		}
		at = parsed
	}

	provider, err := h.accounts.GetProvider(ctx, slug)
	if err != nil {
		http.Error(w, "unknown provider", http.StatusNotFound)
		return
	}

	report, err := h.builder.BuildReport(ctx, *provider, at, granularity)
	if err != nil {
		logger.Error().
			Err(err).
			Str("provider", slug).
			Msg("failed to build revenue report")
		http.Error(w, "failed to build revenue report", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(api.RevenueReportFromDomain(*report)); err != nil {
		logger.Error().
			Err(err).
			Str("provider", slug).
			Msg("failed to encode revenue report")
	}
}
