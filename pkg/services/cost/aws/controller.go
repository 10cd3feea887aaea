package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/de-tools/cost-analyzer/pkg/services/cost/aws/analyzers"
	"github.com/rs/zerolog"
)

const Platform = "aws"

type controller struct {
	analyzers map[string]cost.Analyzer
	order     []string
	now       func() time.Time
}

func ControllerFactory(ctx context.Context, settings config.Settings) (cost.Controller, error) {
	cfg, err := LoadConfig(ctx, settings.Profile, settings.Region)
	if err != nil {
		return nil, err
	}

	return NewAWSController(
		analyzers.NewEC2Analyzer(*cfg, settings.Rates, settings.Metrics),
		analyzers.NewRDSAnalyzer(*cfg, settings.Rates, settings.Metrics),
		analyzers.NewS3Analyzer(*cfg, settings.Rates),
	)
}

// NewAWSController keeps the analyzers in the given order; Scan runs them in
// that order.
func NewAWSController(analyzers ...cost.Analyzer) (cost.Controller, error) {
	ctrl := &controller{
		analyzers: make(map[string]cost.Analyzer),
		now:       time.Now,
	}

	for _, a := range analyzers {
		resourceType := a.GetResourceType()
		if _, exists := ctrl.analyzers[resourceType]; exists {
			return nil, fmt.Errorf("duplicate analyzer for resource type: %s", resourceType)
		}
		ctrl.analyzers[resourceType] = a
		ctrl.order = append(ctrl.order, resourceType)
	}

	if len(ctrl.analyzers) == 0 {
		return nil, fmt.Errorf("at least one analyzer must be provided")
	}

	return ctrl, nil
}

func (c *controller) Scan(ctx context.Context) (*domain.ScanResult, error) {
	return c.scan(ctx, c.order)
}

// ScanResource runs a single analyzer and reports it like a full scan.
func (c *controller) ScanResource(ctx context.Context, resourceType string) (*domain.ScanResult, error) {
	if _, err := c.getAnalyzer(resourceType); err != nil {
		return nil, err
	}
	return c.scan(ctx, []string{resourceType})
}

func (c *controller) scan(ctx context.Context, resourceTypes []string) (*domain.ScanResult, error) {
	logger := zerolog.Ctx(ctx)
	result := &domain.ScanResult{
		StartedAt: c.now(),
		Records:   []domain.ResourceCostRecord{},
	}

	for _, resourceType := range resourceTypes {
		logger.Info().Str("resource_type", resourceType).Msg("Scanning resources")

		records, buckets, err := c.collect(ctx, c.analyzers[resourceType])
		if err != nil {
			return nil, fmt.Errorf("%s scan failed: %w", resourceType, err)
		}
		result.Records = append(result.Records, records...)
		result.Buckets = append(result.Buckets, buckets...)
	}

	result.Duration = c.now().Sub(result.StartedAt)
	return result, nil
}

func (c *controller) GetSupportedResources() []string {
	resources := make([]string, len(c.order))
	copy(resources, c.order)
	return resources
}

func (c *controller) collect(
	ctx context.Context,
	analyzer cost.Analyzer,
) ([]domain.ResourceCostRecord, []domain.BucketMeasurement, error) {
	if ba, ok := analyzer.(cost.BucketAnalyzer); ok {
		return ba.CollectMeasuredUsage(ctx)
	}
	records, err := analyzer.CollectUsage(ctx)
	return records, nil, err
}

func (c *controller) getAnalyzer(resourceType string) (cost.Analyzer, error) {
	analyzer, exists := c.analyzers[resourceType]
	if !exists {
		return nil, fmt.Errorf("unsupported resource type: %s", resourceType)
	}
	return analyzer, nil
}
