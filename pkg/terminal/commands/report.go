package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/services/report"
)

type ReportCmd struct {
	atTime     string
	providers  []string
	period     string
	controller *report.Controller
}

func NewReportCmd(controller *report.Controller) *cobra.Command {
	rc := &ReportCmd{controller: controller}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build and deliver revenue reports",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.atTime, "at-time", "",
		"Anchor instant in RFC3339 format (default is now)")
	cmd.Flags().StringArrayVar(&rc.providers, "provider", nil,
		"Provider slug to report on; repeatable (default is all registered providers)")
	cmd.Flags().StringVar(&rc.period, "period", "weekly",
		"Period granularity: hourly, daily, weekly, monthly or yearly")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	var at time.Time
	if rc.atTime != "" {
		parsed, err := time.Parse(time.RFC3339, rc.atTime)
		if err != nil {
			return fmt.Errorf("invalid --at-time %q: %w", rc.atTime, err)
		}
		at = parsed
	}

	granularity, err := domain.ParseGranularity(rc.period)
	if err != nil {
		return err
	}

	return rc.controller.Run(cmd.Context(), report.RunOptions{
		AtTime:    at,
		Providers: rc.providers,
		Period:    granularity,
	})
}
