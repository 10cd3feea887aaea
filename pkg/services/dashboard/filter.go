package dashboard

import (
	"sort"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/samber/lo"
)

// ApplyFilter keeps the records that pass every active control.
func ApplyFilter(records []domain.ResourceCostRecord, f domain.Filter) []domain.ResourceCostRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	return lo.Filter(records, func(r domain.ResourceCostRecord, _ int) bool {
		if f.Services != nil && !lo.Contains(f.Services, string(r.Service)) {
			return false
		}
		if f.OnlyWithSavings && !r.HasSavings() {
			return false
		}
		if f.MinSavings > 0 && r.PotentialSavings < f.MinSavings {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(r.ResourceID), search) {
			return false
		}
		return true
	})
}

// SortBySavings returns a copy ordered by PotentialSavings, highest first.
// Ties keep their input order.
func SortBySavings(records []domain.ResourceCostRecord) []domain.ResourceCostRecord {
	sorted := make([]domain.ResourceCostRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PotentialSavings > sorted[j].PotentialSavings
	})
	return sorted
}

// AvailableServices lists the distinct non-empty services, sorted.
func AvailableServices(records []domain.ResourceCostRecord) []string {
	services := lo.Uniq(lo.FilterMap(records, func(r domain.ResourceCostRecord, _ int) (string, bool) {
		s := strings.TrimSpace(string(r.Service))
		return s, s != ""
	}))
	sort.Strings(services)
	return services
}
