package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/services/dashboard"
	"github.com/de-tools/cost-analyzer/pkg/store/report"
)

type TableConfig struct {
	ResourceWidth int
	ServiceWidth  int
	TypeWidth     int
	UsageWidth    int
	MoneyWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		ResourceWidth: 40,
		ServiceWidth:  7,
		TypeWidth:     16,
		UsageWidth:    16,
		MoneyWidth:    12,
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

type scanSummary struct {
	*domain.ScanResult
	KPIs     domain.KPIs
	Degraded []domain.BucketMeasurement
}

const scanTemplate = `
AWS resource scan ({{.Region}})
Started: {{.StartedAt.Format "2006-01-02 15:04:05"}}  Duration: {{duration .Duration}}
Report: {{.OutputPath}}

{{separator}}
{{header}}
{{separator}}
{{range .Records}}{{formatRow .}}
{{end}}{{separator}}

Total Estimated Monthly Cost:    {{money .KPIs.TotalEstimatedCost}}
Total Potential Monthly Savings: {{money .KPIs.TotalPotentialSavings}}
Resources With Savings:          {{.KPIs.FlaggedCount}} of {{len .Records}}
{{if .Degraded}}
Buckets reported as empty after a listing failure: {{len .Degraded}}
{{range .Degraded}}  - {{.Bucket}}: {{.Err}}
{{end}}{{end}}{{with .Upload}}
{{if .Err}}Upload to {{.Destination}} failed: {{.Err}}{{else}}Uploaded to {{.Location}}{{end}}
{{end}}`

func (c *Reporter) Handle(result *domain.ScanResult) error {
	cfg := c.config
	funcMap := template.FuncMap{
		"formatRow": func(r domain.ResourceCostRecord) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %*s | %*s |",
				cfg.ResourceWidth, r.ResourceID,
				cfg.ServiceWidth, r.Service,
				cfg.TypeWidth, r.ResourceType,
				cfg.UsageWidth, r.UsageMetric,
				cfg.MoneyWidth, report.Money(r.EstimatedCost),
				cfg.MoneyWidth, report.Money(r.PotentialSavings))
		},
		"header": func() string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %*s | %*s |",
				cfg.ResourceWidth, "ResourceID",
				cfg.ServiceWidth, "Service",
				cfg.TypeWidth, "ResourceType",
				cfg.UsageWidth, "UsageMetric",
				cfg.MoneyWidth, "Cost",
				cfg.MoneyWidth, "Savings")
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", cfg.ResourceWidth+2),
				strings.Repeat("-", cfg.ServiceWidth+2),
				strings.Repeat("-", cfg.TypeWidth+2),
				strings.Repeat("-", cfg.UsageWidth+2),
				strings.Repeat("-", cfg.MoneyWidth+2),
				strings.Repeat("-", cfg.MoneyWidth+2))
		},
		"money": report.Money,
		"duration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
	}

	t, err := template.New("scan").Funcs(funcMap).Parse(scanTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summarize(result))
}

// HandleProfiles prints the AWS profiles a scan can use.
func (c *Reporter) HandleProfiles(profiles []domain.ConfigProfile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(c.writer, "No AWS profiles found")
		return err
	}
	for _, p := range profiles {
		line := p.String()
		if p.Region != "" {
			line += " (" + p.Region + ")"
		}
		if _, err := fmt.Fprintln(c.writer, line); err != nil {
			return err
		}
	}
	return nil
}

func summarize(result *domain.ScanResult) scanSummary {
	return scanSummary{
		ScanResult: result,
		KPIs:       dashboard.ComputeKPIs(result.Records),
		Degraded:   result.DegradedBuckets(),
	}
}
