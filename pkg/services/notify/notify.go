// Package notify delivers finished revenue reports to the configured
// sinks. Rendering and transport live here; the report controller only
// hands over the final table.
package notify

import (
	"context"
	"errors"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

// Notifier receives the final report for one provider.
type Notifier interface {
	ReportCreated(ctx context.Context, report domain.RevenueReport) error
}

// Multi fans a report out to every configured sink. All sinks are
// attempted; their errors are joined.
type Multi []Notifier

func (m Multi) ReportCreated(ctx context.Context, report domain.RevenueReport) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.ReportCreated(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
