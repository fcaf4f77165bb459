// Package periods derives the comparison windows of a revenue report:
// the two most recent consecutive periods of a granularity and the
// corresponding window one year earlier.
package periods

import (
	"fmt"
	"time"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

// Construct derives the comparison windows for an anchor instant.
//
// recent holds three boundaries forming the two most recent consecutive
// periods; yearAgo holds two boundaries forming the matching window one
// calendar year earlier. Boundaries are expressed in loc when non-nil,
// otherwise in the anchor's own location.
//
// A granularity outside the supported set yields
// domain.ErrUnsupportedGranularity; no empty schedules are returned.
func Construct(at time.Time, g domain.Granularity, loc *time.Location) (recent, yearAgo domain.Schedule, err error) {
	switch g {
	case domain.Hourly, domain.Daily, domain.Weekly, domain.Monthly, domain.Yearly:
	default:
		return domain.Schedule{}, domain.Schedule{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedGranularity, g)
	}

	base := localize(truncate(at, g), loc)

	// Yearly alone treats the anchor itself as a completed boundary, so
	// the minute kept by truncate surfaces in the printed windows.
	includeStart := g == domain.Yearly

	prevYearFrom := base.AddDate(-1, 0, 0)
	// AddDate normalizes Feb 29 into Mar 1 when the prior year is not a
	// leap year; clamp back to the last day of the intended month.
	if prevYearFrom.Month() != base.Month() {
		prevYearFrom = prevYearFrom.AddDate(0, 0, -prevYearFrom.Day())
	}
	// On Jan 1 the naive year-ago window would coincide with the older
	// recent window; step back one more year to keep the comparison
	// aligned with a fully distinct period.
	if base.Day() == 1 && base.Month() == time.January {
		prevYearFrom = prevYearFrom.AddDate(-1, 0, 0)
	}

	recent = generate(g, 2, base, includeStart)
	yearAgo = generate(g, 1, prevYearFrom, false)
	return recent, yearAgo, nil
}

// truncate zeroes the sub-period components of the anchor. Yearly keeps
// the minute: its anchor becomes a boundary in its own right and the
// minute offset is wanted downstream.
func truncate(t time.Time, g domain.Granularity) time.Time {
	minute := 0
	if g == domain.Yearly {
		minute = t.Minute()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// localize reinterprets the wall-clock fields of t in loc. The report is
// anchored to the provider's local midnight, not to the same instant.
func localize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// generate walks n boundaries backward from the anchor. With
// includeStart the anchor itself is the final boundary; otherwise the
// final boundary is the start of the period containing the anchor.
func generate(g domain.Granularity, n int, from time.Time, includeStart bool) domain.Schedule {
	boundaries := make([]time.Time, n+1)
	cursor := from
	if !includeStart {
		cursor = periodStart(from, g)
	}
	boundaries[n] = cursor
	for i := n - 1; i >= 0; i-- {
		cursor = prevBoundary(cursor, g)
		boundaries[i] = cursor
	}
	return domain.Schedule{Granularity: g, Boundaries: boundaries}
}

// periodStart returns the start of the period of granularity g that
// contains t. Weeks start on Monday.
func periodStart(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.Hourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case domain.Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case domain.Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	case domain.Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default: // domain.Yearly
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
}

// prevBoundary returns the period start strictly before t. Arithmetic is
// calendar-aware: boundaries already sit on period starts, so stepping a
// whole unit back cannot overflow into a shorter month.
func prevBoundary(t time.Time, g domain.Granularity) time.Time {
	start := periodStart(t, g)
	if start.Before(t) {
		return start
	}
	switch g {
	case domain.Hourly:
		return time.Date(start.Year(), start.Month(), start.Day(), start.Hour()-1, 0, 0, 0, start.Location())
	case domain.Daily:
		return start.AddDate(0, 0, -1)
	case domain.Weekly:
		return start.AddDate(0, 0, -7)
	case domain.Monthly:
		return start.AddDate(0, -1, 0)
	default: // domain.Yearly
		return start.AddDate(-1, 0, 0)
	}
}
