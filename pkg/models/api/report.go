package api

import (
	"time"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

type Provider struct {
	Slug     string `json:"slug"`
	Timezone string `json:"timezone,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type MetricRow struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Last     string `json:"last"`
	Prev     string `json:"prev"`
	PrevYear string `json:"prev_year"`
}

type RevenueReport struct {
	Provider    Provider    `json:"provider"`
	Granularity string      `json:"granularity"`
	Unit        string      `json:"unit"`
	Recent      []Period    `json:"recent_periods"`
	YearAgo     []Period    `json:"year_ago_periods"`
	Rows        []MetricRow `json:"rows"`
}

func ProviderFromDomain(p domain.Provider) Provider {
	return Provider{Slug: p.Slug, Timezone: p.Timezone, Unit: p.Unit}
}

func periodsFromDomain(periods []domain.Period) []Period {
	out := make([]Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, Period{Start: p.Start, End: p.End})
	}
	return out
}

func RevenueReportFromDomain(r domain.RevenueReport) RevenueReport {
	rows := make([]MetricRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, MetricRow{
			Slug:     row.Slug,
			Title:    row.Title,
			Last:     row.Values.Last,
			Prev:     row.Values.Prev,
			PrevYear: row.Values.PrevYear,
		})
	}
	return RevenueReport{
		Provider:    ProviderFromDomain(r.Provider),
		Granularity: r.Granularity.String(),
		Unit:        r.Unit,
		Recent:      periodsFromDomain(r.Recent.Periods()),
		YearAgo:     periodsFromDomain(r.YearAgo.Periods()),
		Rows:        rows,
	}
}
