package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
	"github.com/fin-tools/revenue-pulse/pkg/terminal/export"
)

// Mailer emails the rendered comparison table to the finance
// distribution list.
type Mailer struct {
	addr string
	from string
	to   []string
	send func(addr, from string, to []string, msg []byte) error
}

func NewMailer(addr, from string, to []string) *Mailer {
	return &Mailer{
		addr: addr,
		from: from,
		to:   to,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

func (m *Mailer) ReportCreated(ctx context.Context, report domain.RevenueReport) error {
	body, err := export.NewReporter(nil).Render(report)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(m.to, ", "))
	fmt.Fprintf(&msg, "Subject: Revenue report for %s (%s)\r\n", report.Provider.Slug, report.Granularity)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := m.send(m.addr, m.from, m.to, []byte(msg.String())); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("provider", report.Provider.Slug).
		Strs("to", m.to).
		Msg("mailed revenue report")
	return nil
}
