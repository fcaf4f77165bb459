package metrics

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		expected string
	}{
		{name: "growth gets a plus sign", current: 150, previous: 100, expected: "+50.0%"},
		{name: "decline keeps the minus sign", current: 80, previous: 100, expected: "-20.0%"},
		{name: "zero reference is not applicable", current: 50, previous: 0, expected: "N/A"},
		{name: "no change", current: 100, previous: 100, expected: "0.0%"},
		{name: "rounded to two decimals", current: 400, previous: 300, expected: "+33.33%"},
		{name: "negative reference", current: 50, previous: -100, expected: "-150.0%"},
		{name: "total loss", current: 0, previous: 200, expected: "-100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentageChange(tt.current, tt.previous))
		})
	}
}

func TestAsMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		unit     string
		expected string
	}{
		{name: "usd", amount: 123456, unit: "usd", expected: "$1234.56"},
		{name: "eur", amount: 50, unit: "eur", expected: "€0.50"},
		{name: "negative usd", amount: -995, unit: "usd", expected: "-$9.95"},
		{name: "unknown unit is suffixed", amount: 10000, unit: "dkk", expected: "100.00 DKK"},
		{name: "no unit", amount: 42, unit: "", expected: "0.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AsMoney(tt.amount, tt.unit))
		})
	}
}

func TestReconcileUnit(t *testing.T) {
	t.Run("single unit wins silently", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := zerolog.New(&buf).WithContext(context.Background())

		unit := ReconcileUnit(ctx, "usd", "eur", "eur", "")
		assert.Equal(t, "eur", unit)
		assert.Empty(t, buf.String())
	})

	t.Run("mismatch adopts first-seen unit and diagnoses", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := zerolog.New(&buf).WithContext(context.Background())

		unit := ReconcileUnit(ctx, "usd", "usd", "usd", "eur")
		assert.Equal(t, "usd", unit)
		assert.Contains(t, buf.String(), "different units")
	})

	t.Run("no units falls back to the default", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := zerolog.New(&buf).WithContext(context.Background())

		unit := ReconcileUnit(ctx, "usd", "", "", "")
		assert.Equal(t, "usd", unit)
		assert.Empty(t, buf.String())
	})
}

func TestDistinctUnits(t *testing.T) {
	assert.Equal(t, []string{"usd", "eur"}, DistinctUnits("usd", "", "usd", "eur"))
	assert.Nil(t, DistinctUnits("", ""))
}

func TestBuildTable(t *testing.T) {
	raw := map[domain.MetricCategory]domain.MetricAmounts{
		domain.TotalSales:   {Last: 15000, Prev: 10000, PrevYear: 5000},
		domain.NewSales:     {Last: 5000, Prev: 0, PrevYear: 0},
		domain.ChurnedSales: {Last: 2000, Prev: 2500, PrevYear: 1000},
		domain.Payments:     {Last: 12000, Prev: 12000, PrevYear: 6000},
		domain.Refunds:      {Last: 0, Prev: 300, PrevYear: 0},
	}

	rows := BuildTable(raw, "usd")
	require.Len(t, rows, 5)

	var slugs []string
	for _, row := range rows {
		slugs = append(slugs, row.Slug)
		assert.Equal(t, row.Slug, row.Title)
	}
	assert.Equal(t, []string{"Total Sales", "New Sales", "Churned Sales", "Payments", "Refunds"}, slugs)

	assert.Equal(t, domain.MetricValues{Last: "$150.00", Prev: "+50.0%", PrevYear: "+200.0%"}, rows[0].Values)
	assert.Equal(t, domain.MetricValues{Last: "$50.00", Prev: "N/A", PrevYear: "N/A"}, rows[1].Values)
	assert.Equal(t, domain.MetricValues{Last: "$20.00", Prev: "-20.0%", PrevYear: "+100.0%"}, rows[2].Values)
	assert.Equal(t, domain.MetricValues{Last: "$120.00", Prev: "0.0%", PrevYear: "+100.0%"}, rows[3].Values)
	assert.Equal(t, domain.MetricValues{Last: "$0.00", Prev: "-100.0%", PrevYear: "N/A"}, rows[4].Values)
}

func TestBuildTable_Idempotent(t *testing.T) {
	raw := map[domain.MetricCategory]domain.MetricAmounts{
		domain.TotalSales: {Last: 150, Prev: 100, PrevYear: 0},
	}

	first := BuildTable(raw, "usd")
	second := BuildTable(raw, "usd")
	assert.Equal(t, first, second)
}
