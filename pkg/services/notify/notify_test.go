package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

func sampleReport() domain.RevenueReport {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return domain.RevenueReport{
		Provider:    domain.Provider{Slug: "acme", Unit: "usd"},
		Granularity: domain.Weekly,
		Recent: domain.Schedule{
			Granularity: domain.Weekly,
			Boundaries:  []time.Time{day(2024, 5, 27), day(2024, 6, 3), day(2024, 6, 10)},
		},
		YearAgo: domain.Schedule{
			Granularity: domain.Weekly,
			Boundaries:  []time.Time{day(2023, 6, 5), day(2023, 6, 12)},
		},
		Unit: "usd",
		Rows: []domain.MetricRow{
			{
				Slug:  "Total Sales",
				Title: "Total Sales",
				Values: domain.MetricValues{
					Last:     "$150.00",
					Prev:     "+50.0%",
					PrevYear: "+25.0%",
				},
			},
		},
	}
}

type recordingNotifier struct {
	calls int
	err   error
}

func (r *recordingNotifier) ReportCreated(context.Context, domain.RevenueReport) error {
	r.calls++
	return r.err
}

func TestMulti_AttemptsAllSinks(t *testing.T) {
	first := &recordingNotifier{err: fmt.Errorf("broker down")}
	second := &recordingNotifier{}

	err := Multi{first, second}.ReportCreated(context.Background(), sampleReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestMulti_NoSinksIsNoop(t *testing.T) {
	assert.NoError(t, Multi{}.ReportCreated(context.Background(), sampleReport()))
}

func TestConsole_PrintsTable(t *testing.T) {
	var sb strings.Builder
	console := NewConsole(&sb)

	require.NoError(t, console.ReportCreated(context.Background(), sampleReport()))

	assert.Contains(t, sb.String(), "Revenue report for acme (weekly, amounts in usd)")
	assert.Contains(t, sb.String(), "$150.00")
}

func TestMailer_SendsRenderedTable(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	mailer := NewMailer("smtp.acme.test:25", "reports@acme.test", []string{"finance@acme.test"})
	mailer.send = func(addr, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	require.NoError(t, mailer.ReportCreated(context.Background(), sampleReport()))

	assert.Equal(t, "smtp.acme.test:25", gotAddr)
	assert.Equal(t, "reports@acme.test", gotFrom)
	assert.Equal(t, []string{"finance@acme.test"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Revenue report for acme (weekly)")
	assert.Contains(t, gotMsg, "+50.0%")
}

func TestMailer_SendFailure(t *testing.T) {
	mailer := NewMailer("smtp.acme.test:25", "reports@acme.test", []string{"finance@acme.test"})
	mailer.send = func(string, string, []string, []byte) error {
		return fmt.Errorf("connection refused")
	}

	err := mailer.ReportCreated(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
