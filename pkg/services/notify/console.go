package notify

import (
	"context"
	"io"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/terminal/export"
)

// Console prints the comparison table to a terminal writer.
type Console struct {
	reporter *export.Reporter
}

func NewConsole(w io.Writer) *Console {
	return &Console{reporter: export.NewReporter(w)}
}

func (c *Console) ReportCreated(_ context.Context, report domain.RevenueReport) error {
	return c.reporter.Handle(report)
}
