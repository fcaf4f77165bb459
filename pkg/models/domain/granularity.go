package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Granularity is the calendar unit a reporting period spans.
type Granularity string

const (
	Hourly  Granularity = "hourly"
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Granularities is the closed set of supported granularities, shortest first.
var Granularities = []Granularity{Hourly, Daily, Weekly, Monthly, Yearly}

// ErrUnsupportedGranularity is returned when a granularity outside the
// closed set is requested. It is a named outcome so callers can decide
// between failing and treating it as "nothing to report".
var ErrUnsupportedGranularity = errors.New("unsupported granularity")

// ParseGranularity maps a flag or query value onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Hourly, Daily, Weekly, Monthly, Yearly:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedGranularity, s)
}

func (g Granularity) String() string {
	return string(g)
}
