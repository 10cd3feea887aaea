package analyzers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCPUMetrics_Average(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		output   *cloudwatch.GetMetricStatisticsOutput
		err      error
		expected float64
		wantErr  bool
	}{
		{
			name:     "mean of datapoint averages",
			output:   datapoints(2, 4, 6),
			expected: 4,
		},
		{
			name:     "no datapoints counts as zero",
			output:   datapoints(),
			expected: 0,
		},
		{
			name:    "api error is returned",
			err:     errors.New("throttled"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw := new(mockCloudWatch)
			var output interface{}
			if tt.output != nil {
				output = tt.output
			}
			cw.On("GetMetricStatistics", mock.Anything, mock.Anything).Return(output, tt.err)

			m := newCPUMetrics(cw, domain.DefaultMetricWindow())
			m.now = func() time.Time { return now }

			avg, err := m.average(context.Background(), "AWS/EC2", "InstanceId", "i-1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "i-1")
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, avg, 1e-9)
		})
	}
}

func TestCPUMetrics_RequestWindow(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	cw := new(mockCloudWatch)

	var captured *cloudwatch.GetMetricStatisticsInput
	cw.On("GetMetricStatistics", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*cloudwatch.GetMetricStatisticsInput)
		}).
		Return(datapoints(1), nil)

	m := newCPUMetrics(cw, domain.MetricWindow{LookbackDays: 7, PeriodSeconds: 3600})
	m.now = func() time.Time { return now }

	_, err := m.average(context.Background(), "AWS/RDS", "DBInstanceIdentifier", "orders-db")
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, "AWS/RDS", aws.ToString(captured.Namespace))
	assert.Equal(t, "CPUUtilization", aws.ToString(captured.MetricName))
	assert.Equal(t, "DBInstanceIdentifier", aws.ToString(captured.Dimensions[0].Name))
	assert.Equal(t, now.AddDate(0, 0, -7), aws.ToTime(captured.StartTime))
	assert.Equal(t, now, aws.ToTime(captured.EndTime))
	assert.Equal(t, int32(3600), aws.ToInt32(captured.Period))
	assert.Equal(t, []cwtypes.Statistic{cwtypes.StatisticAverage}, captured.Statistics)
}

func TestComputeRecord(t *testing.T) {
	rates := domain.DefaultEstimationRates()

	tests := []struct {
		name            string
		resourceType    string
		avgCPU          float64
		expectedType    string
		expectedMetric  string
		expectedSavings float64
	}{
		{
			name:            "idle instance is fully flagged",
			resourceType:    "t3.micro",
			avgCPU:          3.2,
			expectedType:    "t3.micro",
			expectedMetric:  "CPU 3.20%",
			expectedSavings: 0.023 * 730,
		},
		{
			name:            "busy instance has no savings",
			resourceType:    "t3.micro",
			avgCPU:          10,
			expectedType:    "t3.micro",
			expectedMetric:  "CPU 10.00%",
			expectedSavings: 0,
		},
		{
			name:            "threshold itself is not idle",
			resourceType:    "t3.micro",
			avgCPU:          5,
			expectedType:    "t3.micro",
			expectedMetric:  "CPU 5.00%",
			expectedSavings: 0,
		},
		{
			name:            "missing type falls back to unknown",
			avgCPU:          0,
			expectedType:    "unknown",
			expectedMetric:  "CPU 0.00%",
			expectedSavings: 0.023 * 730,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := computeRecord("i-1", domain.ServiceEC2, tt.resourceType, tt.avgCPU, rates.EC2Hourly, rates)

			assert.Equal(t, "i-1", rec.ResourceID)
			assert.Equal(t, domain.ServiceEC2, rec.Service)
			assert.Equal(t, tt.expectedType, rec.ResourceType)
			assert.Equal(t, tt.expectedMetric, rec.UsageMetric)
			assert.InDelta(t, 0.023*730, rec.EstimatedCost, 1e-9)
			assert.InDelta(t, tt.expectedSavings, rec.PotentialSavings, 1e-9)
		})
	}
}
