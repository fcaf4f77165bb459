// Package report orchestrates a revenue report run: resolve providers,
// derive comparison windows, aggregate the ledger and hand the rendered
// table to the notifiers.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/services/account"
	"github.com/fin-tools/revenue-pulse/pkg/services/metrics"
	"github.com/fin-tools/revenue-pulse/pkg/services/notify"
	"github.com/fin-tools/revenue-pulse/pkg/services/periods"
)

// Aggregator sums ledger entries over the periods of a schedule.
type Aggregator interface {
	SalesChangeByPeriods(ctx context.Context, provider string, sched domain.Schedule) (*domain.SalesChange, error)
	BalanceByPeriods(ctx context.Context, provider, acct string, sched domain.Schedule) (*domain.Aggregation, error)
}

type Controller struct {
	accounts    account.Explorer
	aggregator  Aggregator
	notifier    notify.Notifier
	defaultUnit string
}

func NewController(
	accounts account.Explorer,
	aggregator Aggregator,
	notifier notify.Notifier,
	defaultUnit string,
) *Controller {
	return &Controller{
		accounts:    accounts,
		aggregator:  aggregator,
		notifier:    notifier,
		defaultUnit: defaultUnit,
	}
}

type RunOptions struct {
	// AtTime anchors the comparison windows. Zero means now.
	AtTime time.Time
	// Providers restricts the run to the given slugs; empty means all
	// registered providers.
	Providers []string
	Period    domain.Granularity
}

// Run builds and delivers one report per selected provider. A failing
// provider is logged and skipped so the remaining reports still go out;
// an unsupported granularity aborts the whole run since every provider
// would fail the same way.
func (c *Controller) Run(ctx context.Context, opts RunOptions) error {
	logger := zerolog.Ctx(ctx)

	at := opts.AtTime
	if at.IsZero() {
		at = time.Now()
	}

	logger.Info().
		Str("period", opts.Period.String()).
		Time("at", at).
		Msg("running revenue reports")

	selected, err := c.accounts.ListProviders(ctx, opts.Providers)
	if err != nil {
		return fmt.Errorf("resolve providers: %w", err)
	}

	failed := 0
	for _, provider := range selected {
		report, err := c.BuildReport(ctx, provider, at, opts.Period)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedGranularity) {
				return err
			}
			logger.Error().
				Err(err).
				Str("provider", provider.Slug).
				Msg("failed to build revenue report")
			failed++
			continue
		}

		if c.notifier != nil {
			if err := c.notifier.ReportCreated(ctx, *report); err != nil {
				logger.Error().
					Err(err).
					Str("provider", provider.Slug).
					Msg("failed to deliver revenue report")
				failed++
				continue
			}
		}

		logger.Info().
			Str("provider", provider.Slug).
			Msg("revenue report created")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d provider reports failed", failed, len(selected))
	}
	return nil
}

// BuildReport assembles the comparison table for one provider anchored
// at the given instant.
func (c *Controller) BuildReport(
	ctx context.Context,
	provider domain.Provider,
	at time.Time,
	g domain.Granularity,
) (*domain.RevenueReport, error) {
	logger := zerolog.Ctx(ctx)

	var loc *time.Location
	if provider.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(provider.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q for provider %q: %w", provider.Timezone, provider.Slug, err)
		}
	}

	recent, yearAgo, err := periods.Construct(at, g, loc)
	if err != nil {
		return nil, err
	}

	if g == domain.Yearly {
		logger.Info().Msgf("two last consecutive yearly periods: %s and %s",
			recent.Oldest(), recent.Newest())
		logger.Info().Msgf("year before the corresponding yearly period: %s",
			yearAgo.Newest())
	} else {
		logger.Info().Msgf("two last consecutive %s periods: %s and %s",
			g, recent.Oldest(), recent.Newest())
		logger.Info().Msgf("same %s period from the previous year: %s",
			g, yearAgo.Newest())
	}

	recentSales, err := c.aggregator.SalesChangeByPeriods(ctx, provider.Slug, recent)
	if err != nil {
		return nil, fmt.Errorf("aggregate recent sales: %w", err)
	}
	yearAgoSales, err := c.aggregator.SalesChangeByPeriods(ctx, provider.Slug, yearAgo)
	if err != nil {
		return nil, fmt.Errorf("aggregate year-ago sales: %w", err)
	}
	recentPayments, err := c.aggregator.BalanceByPeriods(ctx, provider.Slug, domain.AccountFunds, recent)
	if err != nil {
		return nil, fmt.Errorf("aggregate recent payments: %w", err)
	}
	yearAgoPayments, err := c.aggregator.BalanceByPeriods(ctx, provider.Slug, domain.AccountFunds, yearAgo)
	if err != nil {
		return nil, fmt.Errorf("aggregate year-ago payments: %w", err)
	}
	recentRefunds, err := c.aggregator.BalanceByPeriods(ctx, provider.Slug, domain.AccountRefund, recent)
	if err != nil {
		return nil, fmt.Errorf("aggregate recent refunds: %w", err)
	}
	yearAgoRefunds, err := c.aggregator.BalanceByPeriods(ctx, provider.Slug, domain.AccountRefund, yearAgo)
	if err != nil {
		return nil, fmt.Errorf("aggregate year-ago refunds: %w", err)
	}

	raw := map[domain.MetricCategory]domain.MetricAmounts{
		domain.TotalSales: {
			Last:     amountAt(recentSales.Total, 1),
			Prev:     amountAt(recentSales.Total, 0),
			PrevYear: amountAt(yearAgoSales.Total, 0),
		},
		domain.NewSales: {
			Last:     amountAt(recentSales.New, 1),
			Prev:     amountAt(recentSales.New, 0),
			PrevYear: amountAt(yearAgoSales.New, 0),
		},
		domain.ChurnedSales: {
			Last:     amountAt(recentSales.Churned, 1),
			Prev:     amountAt(recentSales.Churned, 0),
			PrevYear: amountAt(yearAgoSales.Churned, 0),
		},
		domain.Payments: {
			Last:     amountAt(recentPayments.Amounts, 1),
			Prev:     amountAt(recentPayments.Amounts, 0),
			PrevYear: amountAt(yearAgoPayments.Amounts, 0),
		},
		domain.Refunds: {
			Last:     amountAt(recentRefunds.Amounts, 1),
			Prev:     amountAt(recentRefunds.Amounts, 0),
			PrevYear: amountAt(yearAgoRefunds.Amounts, 0),
		},
	}

	fallback := provider.Unit
	if fallback == "" {
		fallback = c.defaultUnit
	}
	// Only the recent aggregations vote on the table's unit; a stray unit
	// in a year-ago window must not flip the choice or raise the
	// mismatch diagnostic.
	unit := metrics.ReconcileUnit(ctx, fallback,
		recentSales.Unit, recentPayments.Unit, recentRefunds.Unit)

	return &domain.RevenueReport{
		Provider:    provider,
		Granularity: g,
		Recent:      recent,
		YearAgo:     yearAgo,
		Unit:        unit,
		Rows:        metrics.BuildTable(raw, unit),
	}, nil
}

func amountAt(series []domain.PeriodAmount, i int) int64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i].Amount
}
