package dashboard

import (
	"testing"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func sampleRecords() []domain.ResourceCostRecord {
	return []domain.ResourceCostRecord{
		{ResourceID: "i-web-01", Service: "EC2", EstimatedCost: 16.79, PotentialSavings: 16.79},
		{ResourceID: "i-api-02", Service: "EC2", EstimatedCost: 16.79, PotentialSavings: 0},
		{ResourceID: "orders-db", Service: "RDS", EstimatedCost: 29.93, PotentialSavings: 29.93},
		{ResourceID: "Web-Assets", Service: "S3", EstimatedCost: 0.12, PotentialSavings: 0.06},
		{ResourceID: "tmp", Service: "S3", EstimatedCost: 0.01, PotentialSavings: 0},
	}
}

func ids(records []domain.ResourceCostRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ResourceID)
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.Filter
		expected []string
	}{
		{
			name:     "zero filter keeps everything",
			filter:   domain.Filter{},
			expected: []string{"i-web-01", "i-api-02", "orders-db", "Web-Assets", "tmp"},
		},
		{
			name:     "empty service selection keeps nothing",
			filter:   domain.Filter{Services: []string{}},
			expected: []string{},
		},
		{
			name:     "service selection",
			filter:   domain.Filter{Services: []string{"S3", "RDS"}},
			expected: []string{"orders-db", "Web-Assets", "tmp"},
		},
		{
			name:     "only with savings",
			filter:   domain.Filter{OnlyWithSavings: true},
			expected: []string{"i-web-01", "orders-db", "Web-Assets"},
		},
		{
			name:     "min savings is inclusive",
			filter:   domain.Filter{MinSavings: 16.79},
			expected: []string{"i-web-01", "orders-db"},
		},
		{
			name:     "search is case-insensitive",
			filter:   domain.Filter{Search: "WEB"},
			expected: []string{"i-web-01", "Web-Assets"},
		},
		{
			name: "predicates are conjunctive",
			filter: domain.Filter{
				Services:        []string{"EC2", "S3"},
				OnlyWithSavings: true,
				Search:          "web",
			},
			expected: []string{"i-web-01", "Web-Assets"},
		},
		{
			name:     "no match",
			filter:   domain.Filter{Search: "lambda"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(ApplyFilter(sampleRecords(), tt.filter)))
		})
	}
}

func TestApplyFilter_ResultIsSubset(t *testing.T) {
	records := sampleRecords()
	f := domain.Filter{Services: []string{"EC2"}, MinSavings: 1}

	for _, r := range ApplyFilter(records, f) {
		assert.Contains(t, records, r)
	}
}

func TestSortBySavings(t *testing.T) {
	records := []domain.ResourceCostRecord{
		{ResourceID: "a", PotentialSavings: 1},
		{ResourceID: "b", PotentialSavings: 5},
		{ResourceID: "c", PotentialSavings: 1},
		{ResourceID: "d", PotentialSavings: 0},
		{ResourceID: "e", PotentialSavings: 5},
	}

	sorted := SortBySavings(records)

	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, ids(sorted))
	assert.Equal(t, "a", records[0].ResourceID, "input must not be reordered")
}

func TestAvailableServices(t *testing.T) {
	records := append(sampleRecords(), domain.ResourceCostRecord{ResourceID: "x", Service: ""})

	assert.Equal(t, []string{"EC2", "RDS", "S3"}, AvailableServices(records))
	assert.Empty(t, AvailableServices(nil))
}
