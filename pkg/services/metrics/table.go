// Package metrics folds raw per-period aggregates into the rendered
// comparison table of a revenue report.
package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

var oneHundred = decimal.NewFromInt(100)

// PercentageChange renders the relative change of current against
// previous, rounded to two decimals, with a leading '+' on growth.
// A zero reference is an expected business condition (no activity in
// the comparison window), not an error, and renders as "N/A".
func PercentageChange(current, previous int64) string {
	if previous == 0 {
		return "N/A"
	}
	pct := decimal.NewFromInt(current - previous).
		Mul(oneHundred).
		Div(decimal.NewFromInt(previous)).
		Round(2)

	s := pct.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if pct.IsPositive() {
		return "+" + s + "%"
	}
	return s + "%"
}

// AsMoney formats an amount in cents in the given unit, e.g. "$12.34" or
// "12.34 DKK".
func AsMoney(amount int64, unit string) string {
	value := decimal.NewFromInt(amount).Div(oneHundred)

	symbol, known := currencySymbols[strings.ToLower(unit)]
	switch {
	case known && value.IsNegative():
		return "-" + symbol + value.Abs().StringFixed(2)
	case known:
		return symbol + value.StringFixed(2)
	case unit == "":
		return value.StringFixed(2)
	default:
		return fmt.Sprintf("%s %s", value.StringFixed(2), strings.ToUpper(unit))
	}
}

// DistinctUnits returns the distinct non-empty units in first-seen order.
func DistinctUnits(units ...string) []string {
	var distinct []string
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		distinct = append(distinct, u)
	}
	return distinct
}

// ReconcileUnit picks the single unit a table is rendered in from the
// units reported by the aggregation calls, in call order. A mismatch is
// diagnosed and processing continues with the first-seen unit; when no
// call reported a unit the fallback applies.
func ReconcileUnit(ctx context.Context, fallback string, units ...string) string {
	distinct := DistinctUnits(units...)
	if len(distinct) > 1 {
		zerolog.Ctx(ctx).Error().
			Strs("units", distinct).
			Msg("aggregations reported different units")
	}
	if len(distinct) == 0 {
		return fallback
	}
	return distinct[0]
}

// BuildTable renders the comparison table in the fixed category order.
// All percentage math happens against the raw amounts before any
// formatting; a category missing from raw renders as a zero row.
func BuildTable(raw map[domain.MetricCategory]domain.MetricAmounts, unit string) []domain.MetricRow {
	rows := make([]domain.MetricRow, 0, len(domain.MetricCategories))
	for _, category := range domain.MetricCategories {
		amounts := raw[category]
		rows = append(rows, domain.MetricRow{
			Slug:  string(category),
			Title: string(category),
			Values: domain.MetricValues{
				Last:     AsMoney(amounts.Last, unit),
				Prev:     PercentageChange(amounts.Last, amounts.Prev),
				PrevYear: PercentageChange(amounts.Last, amounts.PrevYear),
			},
		})
	}
	return rows
}
