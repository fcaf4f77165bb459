package domain

import (
	"fmt"
	"time"
)

// Period is a half-open interval [Start, End), always timezone-aware.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s to %s", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
}

// Schedule holds n+1 strictly increasing boundary instants defining n
// consecutive periods of one granularity, generated backward from an
// anchor. boundary[i] is both the end of period i-1 and the start of
// period i.
type Schedule struct {
	Granularity Granularity
	Boundaries  []time.Time
}

// Periods expands the boundaries into the consecutive periods they define.
func (s Schedule) Periods() []Period {
	if len(s.Boundaries) < 2 {
		return nil
	}
	periods := make([]Period, 0, len(s.Boundaries)-1)
	for i := 1; i < len(s.Boundaries); i++ {
		periods = append(periods, Period{Start: s.Boundaries[i-1], End: s.Boundaries[i]})
	}
	return periods
}

// Newest returns the most recent period of the schedule.
func (s Schedule) Newest() Period {
	n := len(s.Boundaries)
	return Period{Start: s.Boundaries[n-2], End: s.Boundaries[n-1]}
}

// Oldest returns the earliest period of the schedule.
func (s Schedule) Oldest() Period {
	return Period{Start: s.Boundaries[0], End: s.Boundaries[1]}
}
