// Package ledger aggregates the double-entry transaction ledger into
// per-period sums for the revenue report.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

// Store answers the aggregation queries of the report controller against
// the provider's transaction ledger.
type Store interface {
	// SalesChangeByPeriods sums receivable revenue per period and breaks
	// it into total, first-time-customer, and churned shares.
	SalesChangeByPeriods(ctx context.Context, provider string, sched domain.Schedule) (*domain.SalesChange, error)
	// BalanceByPeriods sums entries credited to the given account of the
	// provider per period.
	BalanceByPeriods(ctx context.Context, provider, account string, sched domain.Schedule) (*domain.Aggregation, error)
}

type ledgerStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ledgerStore{db: db}, nil
}

const sumQuery = `
	SELECT COALESCE(SUM(amount), 0), COALESCE(MAX(unit), '')
	FROM transactions
	WHERE dest_organization = ? AND dest_account = ?
	  AND created_at >= ? AND created_at < ?`

// newSalesQuery keeps only entries from customers whose first receivable
// entry with the provider falls inside the window.
const newSalesQuery = `
	SELECT COALESCE(SUM(t.amount), 0)
	FROM transactions t
	WHERE t.dest_organization = ? AND t.dest_account = ?
	  AND t.created_at >= ? AND t.created_at < ?
	  AND (SELECT MIN(t2.created_at) FROM transactions t2
	       WHERE t2.orig_organization = t.orig_organization
	         AND t2.dest_organization = t.dest_organization
	         AND t2.dest_account = t.dest_account) >= ?`

// churnedSalesQuery sums the preceding window's revenue of customers
// with no receivable entry inside the window.
const churnedSalesQuery = `
	SELECT COALESCE(SUM(t.amount), 0)
	FROM transactions t
	WHERE t.dest_organization = ? AND t.dest_account = ?
	  AND t.created_at >= ? AND t.created_at < ?
	  AND NOT EXISTS (SELECT 1 FROM transactions t2
	       WHERE t2.orig_organization = t.orig_organization
	         AND t2.dest_organization = t.dest_organization
	         AND t2.dest_account = t.dest_account
	         AND t2.created_at >= ? AND t2.created_at < ?)`

func (s *ledgerStore) SalesChangeByPeriods(
	ctx context.Context,
	provider string,
	sched domain.Schedule,
) (*domain.SalesChange, error) {
	change := &domain.SalesChange{}

	for _, period := range sched.Periods() {
		var total int64
		var unit string
		err := s.db.QueryRowContext(ctx, sumQuery,
			provider, domain.AccountReceivable, period.Start, period.End,
		).Scan(&total, &unit)
		if err != nil {
			return nil, fmt.Errorf("sum receivable for %s: %w", period, err)
		}
		if change.Unit == "" {
			change.Unit = unit
		}

		var fresh int64
		err = s.db.QueryRowContext(ctx, newSalesQuery,
			provider, domain.AccountReceivable, period.Start, period.End, period.Start,
		).Scan(&fresh)
		if err != nil {
			return nil, fmt.Errorf("sum new sales for %s: %w", period, err)
		}

		// The churn window is the period immediately before this one.
		churnStart := previousPeriodStart(period.Start, sched.Granularity)
		var churned int64
		err = s.db.QueryRowContext(ctx, churnedSalesQuery,
			provider, domain.AccountReceivable, churnStart, period.Start, period.Start, period.End,
		).Scan(&churned)
		if err != nil {
			return nil, fmt.Errorf("sum churned sales for %s: %w", period, err)
		}

		change.Total = append(change.Total, domain.PeriodAmount{Period: period, Amount: total})
		change.New = append(change.New, domain.PeriodAmount{Period: period, Amount: fresh})
		change.Churned = append(change.Churned, domain.PeriodAmount{Period: period, Amount: churned})
	}

	return change, nil
}

// previousPeriodStart steps one whole period back from a boundary.
// Calendar arithmetic, not duration arithmetic: months and years vary in
// length, and wall-clock stepping keeps day boundaries stable across
// DST shifts.
func previousPeriodStart(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.Hourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()-1, 0, 0, 0, t.Location())
	case domain.Daily:
		return t.AddDate(0, 0, -1)
	case domain.Weekly:
		return t.AddDate(0, 0, -7)
	case domain.Monthly:
		return t.AddDate(0, -1, 0)
	default: // domain.Yearly
		return t.AddDate(-1, 0, 0)
	}
}

func (s *ledgerStore) BalanceByPeriods(
	ctx context.Context,
	provider, account string,
	sched domain.Schedule,
) (*domain.Aggregation, error) {
	agg := &domain.Aggregation{}

	for _, period := range sched.Periods() {
		var amount int64
		var unit string
		err := s.db.QueryRowContext(ctx, sumQuery,
			provider, account, period.Start, period.End,
		).Scan(&amount, &unit)
		if err != nil {
			return nil, fmt.Errorf("sum %s for %s: %w", account, period, err)
		}
		if agg.Unit == "" {
			agg.Unit = unit
		}
		agg.Amounts = append(agg.Amounts, domain.PeriodAmount{Period: period, Amount: amount})
	}

	return agg, nil
}
