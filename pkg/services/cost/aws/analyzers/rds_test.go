package analyzers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rdsMarker(in *rds.DescribeDBInstancesInput) *string { return in.Marker }

func TestRDSAnalyzer_CollectUsage(t *testing.T) {
	client := new(mockRDS)
	cw := new(mockCloudWatch)

	client.On("DescribeDBInstances", mock.Anything, firstPage(rdsMarker)).
		Return(&rds.DescribeDBInstancesOutput{
			DBInstances: []types.DBInstance{
				{DBInstanceIdentifier: aws.String("orders-db"), DBInstanceClass: aws.String("db.t3.micro")},
			},
			Marker: aws.String("m-2"),
		}, nil)
	client.On("DescribeDBInstances", mock.Anything, pageAfter(rdsMarker, "m-2")).
		Return(&rds.DescribeDBInstancesOutput{
			DBInstances: []types.DBInstance{
				{DBInstanceIdentifier: aws.String("reports-db")},
			},
		}, nil)

	cw.On("GetMetricStatistics", mock.Anything, forResource("orders-db")).Return(datapoints(40), nil)
	cw.On("GetMetricStatistics", mock.Anything, forResource("reports-db")).Return(datapoints(1.5), nil)

	rates := domain.DefaultEstimationRates()
	a := newRDSAnalyzer(client, cw, rates, domain.DefaultMetricWindow())

	records, err := a.CollectUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	cost := rates.RDSHourly * rates.HoursPerMonth

	assert.Equal(t, domain.ResourceCostRecord{
		ResourceID:       "orders-db",
		Service:          domain.ServiceRDS,
		ResourceType:     "db.t3.micro",
		UsageMetric:      "CPU 40.00%",
		EstimatedCost:    cost,
		PotentialSavings: 0,
	}, records[0])
	assert.Equal(t, domain.ResourceCostRecord{
		ResourceID:       "reports-db",
		Service:          domain.ServiceRDS,
		ResourceType:     "unknown",
		UsageMetric:      "CPU 1.50%",
		EstimatedCost:    cost,
		PotentialSavings: cost,
	}, records[1])

	client.AssertExpectations(t)
	cw.AssertExpectations(t)
}

func TestRDSAnalyzer_MetricRequest(t *testing.T) {
	client := new(mockRDS)
	cw := new(mockCloudWatch)

	client.On("DescribeDBInstances", mock.Anything, mock.Anything).
		Return(&rds.DescribeDBInstancesOutput{
			DBInstances: []types.DBInstance{{DBInstanceIdentifier: aws.String("db-1")}},
		}, nil)
	cw.On("GetMetricStatistics", mock.Anything, mock.MatchedBy(func(in *cloudwatch.GetMetricStatisticsInput) bool {
		return aws.ToString(in.Namespace) == "AWS/RDS" &&
			aws.ToString(in.Dimensions[0].Name) == "DBInstanceIdentifier"
	})).Return(datapoints(), nil)

	a := newRDSAnalyzer(client, cw, domain.DefaultEstimationRates(), domain.DefaultMetricWindow())
	_, err := a.CollectUsage(context.Background())

	require.NoError(t, err)
	cw.AssertExpectations(t)
}

func TestRDSAnalyzer_DescribeFailure(t *testing.T) {
	client := new(mockRDS)
	client.On("DescribeDBInstances", mock.Anything, mock.Anything).Return(nil, errors.New("expired token"))

	a := newRDSAnalyzer(client, new(mockCloudWatch), domain.DefaultEstimationRates(), domain.DefaultMetricWindow())
	records, err := a.CollectUsage(context.Background())

	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to describe RDS instances")
}
