package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/fin-tools/revenue-pulse/pkg/models/domain"
)

type TableConfig struct {
	TitleWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		TitleWidth: 28,
		ValueWidth: 18,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle renders the comparison table for one provider to the
// configured writer.
func (c *Reporter) Handle(report domain.RevenueReport) error {
	return c.render(c.writer, report)
}

// Render returns the rendered table as a string, for sinks that embed
// it in another payload.
func (c *Reporter) Render(report domain.RevenueReport) (string, error) {
	var sb strings.Builder
	if err := c.render(&sb, report); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Reporter) render(w io.Writer, report domain.RevenueReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(title, last, prev, prevYear string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s |",
				c.config.TitleWidth, title,
				c.config.ValueWidth, last,
				c.config.ValueWidth, prev,
				c.config.ValueWidth, prevYear)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.TitleWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"day": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	tmpl := `
Revenue report for {{.Provider.Slug}} ({{.Granularity}}, amounts in {{.Unit}})

Last period:     {{day .Recent.Newest.Start}} to {{day .Recent.Newest.End}}
Previous period: {{day .Recent.Oldest.Start}} to {{day .Recent.Oldest.End}}
Year-ago period: {{day .YearAgo.Newest.Start}} to {{day .YearAgo.Newest.End}}

{{separator}}
{{formatRow "Metric" "Last" "Previous" "Year ago"}}
{{separator}}
{{range .Rows}}{{formatRow .Title .Values.Last .Values.Prev .Values.PrevYear}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(w, report)
}
