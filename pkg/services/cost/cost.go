package cost

import (
	"context"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
)

type Analyzer interface {
	GetResourceType() string
	CollectUsage(ctx context.Context) ([]domain.ResourceCostRecord, error)
}

// BucketAnalyzer is an Analyzer that also reports how each bucket was sized.
type BucketAnalyzer interface {
	Analyzer
	CollectMeasuredUsage(ctx context.Context) ([]domain.ResourceCostRecord, []domain.BucketMeasurement, error)
}

// Controller defines the interface for resource cost controllers
type Controller interface {
	// Scan runs every analyzer in registration order and concatenates their rows
	Scan(ctx context.Context) (*domain.ScanResult, error)
	// ScanResource runs the analyzer of one resource type only
	ScanResource(ctx context.Context, resourceType string) (*domain.ScanResult, error)
	// GetSupportedResources returns the resource types in scan order
	GetSupportedResources() []string
}
