package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/dustin/go-humanize"
)

const (
	ColumnResourceID       = "ResourceID"
	ColumnService          = "Service"
	ColumnResourceType     = "ResourceType"
	ColumnUsageMetric      = "UsageMetric"
	ColumnEstimatedCost    = "EstimatedCost"
	ColumnPotentialSavings = "PotentialSavings"
)

// Columns is the canonical header of the report file.
var Columns = []string{
	ColumnResourceID,
	ColumnService,
	ColumnResourceType,
	ColumnUsageMetric,
	ColumnEstimatedCost,
	ColumnPotentialSavings,
}

var legacyColumns = map[string]string{
	"EstimatedCostUSD":    ColumnEstimatedCost,
	"PotentialSavingsUSD": ColumnPotentialSavings,
}

// Write serializes records as CSV with the canonical header. Money values
// are rounded to cents.
func Write(w io.Writer, records []domain.ResourceCostRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ResourceID,
			string(r.Service),
			r.ResourceType,
			r.UsageMetric,
			formatMoney(r.EstimatedCost),
			formatMoney(r.PotentialSavings),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row %s: %w", r.ResourceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile overwrites the report at path.
func WriteFile(path string, records []domain.ResourceCostRecord) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	return Write(f, records)
}

// Normalize reads a delimited report and repairs its schema: legacy column
// names are renamed, missing columns are backfilled, and money values that
// cannot be parsed (or are negative or not finite) become 0.
func Normalize(r io.Reader) ([]domain.ResourceCostRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ResourceCostRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report header: %w", err)
	}

	index := headerIndex(header)

	records := []domain.ResourceCostRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read report row: %w", err)
		}
		if isBlank(row) {
			continue
		}

		field := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		records = append(records, domain.ResourceCostRecord{
			ResourceID:       field(ColumnResourceID),
			Service:          domain.Service(field(ColumnService)),
			ResourceType:     field(ColumnResourceType),
			UsageMetric:      field(ColumnUsageMetric),
			EstimatedCost:    parseMoney(field(ColumnEstimatedCost)),
			PotentialSavings: parseMoney(field(ColumnPotentialSavings)),
		})
	}

	return records, nil
}

// ReadFile opens and normalizes the report at path.
func ReadFile(path string) ([]domain.ResourceCostRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Normalize(f)
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if canonical, ok := legacyColumns[name]; ok {
			name = canonical
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

func parseMoney(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Money formats a USD amount for display with thousands separators, e.g.
// $1,234.56.
func Money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
