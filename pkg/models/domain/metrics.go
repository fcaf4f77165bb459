package domain

// Ledger account names the aggregation queries filter on.
const (
	AccountReceivable = "Receivable"
	AccountFunds      = "Funds"
	AccountRefund     = "Refund"
)

// MetricCategory names one row of the comparison table. Slug and title
// are identical in this system.
type MetricCategory string

const (
	TotalSales   MetricCategory = "Total Sales"
	NewSales     MetricCategory = "New Sales"
	ChurnedSales MetricCategory = "Churned Sales"
	Payments     MetricCategory = "Payments"
	Refunds      MetricCategory = "Refunds"
)

// MetricCategories is the fixed row order of the table. Downstream
// rendering depends on it, so it must be preserved exactly.
var MetricCategories = []MetricCategory{TotalSales, NewSales, ChurnedSales, Payments, Refunds}

// PeriodAmount is a summed amount, in cents, over one period.
type PeriodAmount struct {
	Period Period
	Amount int64
}

// Aggregation is the result of one aggregation call: one summed amount
// per period of the schedule it was invoked with, plus the unit the
// underlying rows were denominated in (empty when no rows matched).
type Aggregation struct {
	Amounts []PeriodAmount
	Unit    string
}

// SalesChange breaks receivable revenue per period into its total, the
// share coming from first-time customers, and the prior-window revenue
// of customers who went silent.
type SalesChange struct {
	Total   []PeriodAmount
	New     []PeriodAmount
	Churned []PeriodAmount
	Unit    string
}

// MetricAmounts carries the raw amounts, in cents, for one category
// across the three comparison windows.
type MetricAmounts struct {
	Last     int64
	Prev     int64
	PrevYear int64
}

// MetricValues are the rendered fields of a row. Formatting is terminal:
// Prev and PrevYear hold percentage-change strings, Last a money string,
// and the numeric amounts are irrecoverable from them.
type MetricValues struct {
	Last     string `json:"last"`
	Prev     string `json:"prev"`
	PrevYear string `json:"prev_year"`
}

// MetricRow is one rendered row of the comparison table.
type MetricRow struct {
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Values MetricValues `json:"values"`
}

// RevenueReport is the final product handed to notifiers: the comparison
// windows and the ordered metric rows for one provider.
type RevenueReport struct {
	Provider    Provider
	Granularity Granularity
	Recent      Schedule
	YearAgo     Schedule
	Unit        string
	Rows        []MetricRow
}
