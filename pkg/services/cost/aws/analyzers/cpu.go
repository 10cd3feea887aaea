package analyzers

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/samber/lo"
)

const unknownResourceType = "unknown"

type MetricStatisticsAPI interface {
	GetMetricStatistics(
		ctx context.Context,
		params *cloudwatch.GetMetricStatisticsInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.GetMetricStatisticsOutput, error)
}

type cpuMetrics struct {
	client MetricStatisticsAPI
	window domain.MetricWindow
	now    func() time.Time
}

func newCPUMetrics(client MetricStatisticsAPI, window domain.MetricWindow) cpuMetrics {
	return cpuMetrics{client: client, window: window, now: time.Now}
}

// average returns the mean of the hourly CPUUtilization averages over the
// lookback window. A window without datapoints counts as 0% utilization.
func (m cpuMetrics) average(ctx context.Context, namespace, dimension, id string) (float64, error) {
	end := m.now()
	start := end.AddDate(0, 0, -m.window.LookbackDays)

	out, err := m.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String("CPUUtilization"),
		Dimensions: []cwtypes.Dimension{
			{Name: aws.String(dimension), Value: aws.String(id)},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(m.window.PeriodSeconds),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU utilization for %s: %w", id, err)
	}

	if len(out.Datapoints) == 0 {
		return 0, nil
	}

	sum := lo.SumBy(out.Datapoints, func(dp cwtypes.Datapoint) float64 {
		return aws.ToFloat64(dp.Average)
	})
	return sum / float64(len(out.Datapoints)), nil
}

// computeRecord prices an always-on instance at a flat hourly rate and flags
// the whole monthly cost as savings when it sat below the idle threshold.
func computeRecord(
	id string,
	service domain.Service,
	resourceType string,
	avgCPU float64,
	hourlyRate float64,
	rates domain.EstimationRates,
) domain.ResourceCostRecord {
	if resourceType == "" {
		resourceType = unknownResourceType
	}

	cost := hourlyRate * rates.HoursPerMonth
	var savings float64
	if avgCPU < rates.IdleCPUThreshold {
		savings = cost
	}

	return domain.ResourceCostRecord{
		ResourceID:       id,
		Service:          service,
		ResourceType:     resourceType,
		UsageMetric:      fmt.Sprintf("CPU %.2f%%", avgCPU),
		EstimatedCost:    cost,
		PotentialSavings: savings,
	}
}
