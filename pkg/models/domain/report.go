package domain

// ReportSource selects the report the dashboard reads. Upload, when set, is
// the digest returned for a previously uploaded file and wins over Path.
type ReportSource struct {
	Path   string
	Upload string
}

// Dataset is a normalized report loaded by the dashboard.
type Dataset struct {
	Source  string
	Records []ResourceCostRecord
}

// Filter holds the dashboard controls. A nil Services slice selects every
// service present in the dataset; an empty non-nil slice selects none.
type Filter struct {
	Services        []string
	OnlyWithSavings bool
	MinSavings      float64
	Search          string
}

type KPIs struct {
	TotalEstimatedCost    float64
	TotalPotentialSavings float64
	FlaggedCount          int
}

type ServiceAggregate struct {
	Service          string
	EstimatedCost    float64
	PotentialSavings float64
	CostShare        float64 // fraction of the view's total estimated cost
}

type SavingsRange struct {
	Min  float64
	Max  float64
	Step float64
}

// DashboardView is everything the dashboard renders for one request.
type DashboardView struct {
	Source          string
	KPIs            KPIs
	Services        []string
	Filter          Filter
	Range           SavingsRange
	ByService       []ServiceAggregate
	CostEmptyMsg    string
	SavingsEmptyMsg string
	Rows            []ResourceCostRecord
	Preview         []ResourceCostRecord
	TotalRows       int
}
