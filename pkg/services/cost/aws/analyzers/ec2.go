package analyzers

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/rs/zerolog"
)

type ec2Analyzer struct {
	client  ec2.DescribeInstancesAPIClient
	metrics cpuMetrics
	rates   domain.EstimationRates
}

func NewEC2Analyzer(cfg awssdk.Config, rates domain.EstimationRates, window domain.MetricWindow) *ec2Analyzer {
	return newEC2Analyzer(ec2.NewFromConfig(cfg), cloudwatch.NewFromConfig(cfg), rates, window)
}

func newEC2Analyzer(
	client ec2.DescribeInstancesAPIClient,
	cw MetricStatisticsAPI,
	rates domain.EstimationRates,
	window domain.MetricWindow,
) *ec2Analyzer {
	return &ec2Analyzer{
		client:  client,
		metrics: newCPUMetrics(cw, window),
		rates:   rates,
	}
}

func (a *ec2Analyzer) GetResourceType() string {
	return string(domain.ServiceEC2)
}

func (a *ec2Analyzer) CollectUsage(ctx context.Context) ([]domain.ResourceCostRecord, error) {
	logger := zerolog.Ctx(ctx)

	paginator := ec2.NewDescribeInstancesPaginator(a.client, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   awssdk.String("instance-state-name"),
				Values: []string{"running", "stopped"},
			},
		},
	})

	records := []domain.ResourceCostRecord{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe EC2 instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				id := awssdk.ToString(instance.InstanceId)
				avg, err := a.metrics.average(ctx, "AWS/EC2", "InstanceId", id)
				if err != nil {
					return nil, err
				}

				records = append(records, computeRecord(
					id,
					domain.ServiceEC2,
					string(instance.InstanceType),
					avg,
					a.rates.EC2Hourly,
					a.rates,
				))
			}
		}
	}

	logger.Info().Int("instances", len(records)).Msg("EC2 instances analyzed")
	return records, nil
}
