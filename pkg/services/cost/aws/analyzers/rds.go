package analyzers

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/rs/zerolog"
)

type rdsAnalyzer struct {
	client  rds.DescribeDBInstancesAPIClient
	metrics cpuMetrics
	rates   domain.EstimationRates
}

func NewRDSAnalyzer(cfg awssdk.Config, rates domain.EstimationRates, window domain.MetricWindow) *rdsAnalyzer {
	return newRDSAnalyzer(rds.NewFromConfig(cfg), cloudwatch.NewFromConfig(cfg), rates, window)
}

func newRDSAnalyzer(
	client rds.DescribeDBInstancesAPIClient,
	cw MetricStatisticsAPI,
	rates domain.EstimationRates,
	window domain.MetricWindow,
) *rdsAnalyzer {
	return &rdsAnalyzer{
		client:  client,
		metrics: newCPUMetrics(cw, window),
		rates:   rates,
	}
}

func (a *rdsAnalyzer) GetResourceType() string {
	return string(domain.ServiceRDS)
}

func (a *rdsAnalyzer) CollectUsage(ctx context.Context) ([]domain.ResourceCostRecord, error) {
	logger := zerolog.Ctx(ctx)

	paginator := rds.NewDescribeDBInstancesPaginator(a.client, &rds.DescribeDBInstancesInput{})

	records := []domain.ResourceCostRecord{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS instances: %w", err)
		}

		for _, db := range page.DBInstances {
			id := awssdk.ToString(db.DBInstanceIdentifier)
			avg, err := a.metrics.average(ctx, "AWS/RDS", "DBInstanceIdentifier", id)
			if err != nil {
				return nil, err
			}

			records = append(records, computeRecord(
				id,
				domain.ServiceRDS,
				awssdk.ToString(db.DBInstanceClass),
				avg,
				a.rates.RDSHourly,
				a.rates,
			))
		}
	}

	logger.Info().Int("instances", len(records)).Msg("RDS instances analyzed")
	return records, nil
}
