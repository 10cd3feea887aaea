package dashboard

import (
	"math"
	"sort"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/samber/lo"
)

const (
	minSliderSpan     = 0.01
	defaultSliderSpan = 1.0
	sliderStep        = 1.0
)

func ComputeKPIs(records []domain.ResourceCostRecord) domain.KPIs {
	return domain.KPIs{
		TotalEstimatedCost: lo.SumBy(records, func(r domain.ResourceCostRecord) float64 {
			return r.EstimatedCost
		}),
		TotalPotentialSavings: lo.SumBy(records, func(r domain.ResourceCostRecord) float64 {
			return r.PotentialSavings
		}),
		FlaggedCount: lo.CountBy(records, func(r domain.ResourceCostRecord) bool {
			return r.HasSavings()
		}),
	}
}

// GroupByService sums cost and savings per service, sorted by service name.
func GroupByService(records []domain.ResourceCostRecord) []domain.ServiceAggregate {
	groups := lo.GroupBy(records, func(r domain.ResourceCostRecord) string {
		return string(r.Service)
	})

	total := lo.SumBy(records, func(r domain.ResourceCostRecord) float64 { return r.EstimatedCost })

	aggregates := make([]domain.ServiceAggregate, 0, len(groups))
	for service, rows := range groups {
		kpis := ComputeKPIs(rows)
		agg := domain.ServiceAggregate{
			Service:          service,
			EstimatedCost:    kpis.TotalEstimatedCost,
			PotentialSavings: kpis.TotalPotentialSavings,
		}
		if total > 0 {
			agg.CostShare = kpis.TotalEstimatedCost / total
		}
		aggregates = append(aggregates, agg)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].Service < aggregates[j].Service
	})
	return aggregates
}

// SavingsSliderRange spans 0 to the largest observed savings. A dataset
// without savings gets a span of 1 so the control never collapses.
func SavingsSliderRange(records []domain.ResourceCostRecord) domain.SavingsRange {
	upper := defaultSliderSpan
	if len(records) > 0 {
		top := lo.MaxBy(records, func(a, b domain.ResourceCostRecord) bool {
			return a.PotentialSavings > b.PotentialSavings
		})
		if top.PotentialSavings > 0 {
			upper = top.PotentialSavings
		}
	}

	return domain.SavingsRange{
		Min:  0,
		Max:  math.Max(upper, minSliderSpan),
		Step: sliderStep,
	}
}

// Clamp keeps a requested threshold inside the slider range.
func Clamp(v float64, r domain.SavingsRange) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Preview returns at most n leading records.
func Preview(records []domain.ResourceCostRecord, n int) []domain.ResourceCostRecord {
	if n < 0 {
		n = 0
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}
