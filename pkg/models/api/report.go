package api

type ResourceCostRecord struct {
	ResourceID       string  `json:"resource_id"`
	Service          string  `json:"service"`
	ResourceType     string  `json:"resource_type"`
	UsageMetric      string  `json:"usage_metric"`
	EstimatedCost    float64 `json:"estimated_cost"`
	PotentialSavings float64 `json:"potential_savings"`
}

type KPIs struct {
	TotalEstimatedCost    float64 `json:"total_estimated_cost"`
	TotalPotentialSavings float64 `json:"total_potential_savings"`
	FlaggedCount          int     `json:"flagged_count"`
}

type ServiceAggregate struct {
	Service          string  `json:"service"`
	EstimatedCost    float64 `json:"estimated_cost"`
	PotentialSavings float64 `json:"potential_savings"`
	CostShare        float64 `json:"cost_share"`
}

type SavingsRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

type ReportFilter struct {
	Services        []string `json:"services"`
	OnlyWithSavings bool     `json:"only_with_savings"`
	MinSavings      float64  `json:"min_savings"`
	Search          string   `json:"search,omitempty"`
}

type Charts struct {
	ByService           []ServiceAggregate `json:"by_service"`
	CostEmptyMessage    string             `json:"cost_empty_message,omitempty"`
	SavingsEmptyMessage string             `json:"savings_empty_message,omitempty"`
}

type ReportView struct {
	Source    string               `json:"source"`
	KPIs      KPIs                 `json:"kpis"`
	Services  []string             `json:"services"`
	Filter    ReportFilter         `json:"filter"`
	Range     SavingsRange         `json:"savings_range"`
	Charts    Charts               `json:"charts"`
	Rows      []ResourceCostRecord `json:"rows"`
	TotalRows int                  `json:"total_rows"`
}

type ReportPreview struct {
	Rows      []ResourceCostRecord `json:"rows"`
	TotalRows int                  `json:"total_rows"`
}

type UploadResponse struct {
	Upload string `json:"upload"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
