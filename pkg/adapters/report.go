package adapters

import (
	"github.com/de-tools/cost-analyzer/pkg/models/api"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/samber/lo"
)

func MapDomainRecordToAPI(r domain.ResourceCostRecord) api.ResourceCostRecord {
	return api.ResourceCostRecord{
		ResourceID:       r.ResourceID,
		Service:          string(r.Service),
		ResourceType:     r.ResourceType,
		UsageMetric:      r.UsageMetric,
		EstimatedCost:    r.EstimatedCost,
		PotentialSavings: r.PotentialSavings,
	}
}

func MapDomainRecordsToAPI(records []domain.ResourceCostRecord) []api.ResourceCostRecord {
	return lo.Map(records, func(r domain.ResourceCostRecord, _ int) api.ResourceCostRecord {
		return MapDomainRecordToAPI(r)
	})
}

func MapDomainViewToAPI(view domain.DashboardView) api.ReportView {
	services := view.Filter.Services
	if services == nil {
		services = view.Services
	}

	return api.ReportView{
		Source: view.Source,
		KPIs: api.KPIs{
			TotalEstimatedCost:    view.KPIs.TotalEstimatedCost,
			TotalPotentialSavings: view.KPIs.TotalPotentialSavings,
			FlaggedCount:          view.KPIs.FlaggedCount,
		},
		Services: lo.Ternary(view.Services == nil, []string{}, view.Services),
		Filter: api.ReportFilter{
			Services:        lo.Ternary(services == nil, []string{}, services),
			OnlyWithSavings: view.Filter.OnlyWithSavings,
			MinSavings:      view.Filter.MinSavings,
			Search:          view.Filter.Search,
		},
		Range: api.SavingsRange{
			Min:  view.Range.Min,
			Max:  view.Range.Max,
			Step: view.Range.Step,
		},
		Charts: api.Charts{
			ByService: lo.Map(view.ByService, func(a domain.ServiceAggregate, _ int) api.ServiceAggregate {
				return api.ServiceAggregate{
					Service:          a.Service,
					EstimatedCost:    a.EstimatedCost,
					PotentialSavings: a.PotentialSavings,
					CostShare:        a.CostShare,
				}
			}),
			CostEmptyMessage:    view.CostEmptyMsg,
			SavingsEmptyMessage: view.SavingsEmptyMsg,
		},
		Rows:      MapDomainRecordsToAPI(view.Rows),
		TotalRows: view.TotalRows,
	}
}
