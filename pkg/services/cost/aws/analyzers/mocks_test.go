package analyzers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

type mockEC2 struct {
	mock.Mock
}

func (m *mockEC2) DescribeInstances(
	ctx context.Context,
	params *ec2.DescribeInstancesInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeInstancesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeInstancesOutput), args.Error(1)
}

type mockRDS struct {
	mock.Mock
}

func (m *mockRDS) DescribeDBInstances(
	ctx context.Context,
	params *rds.DescribeDBInstancesInput,
	_ ...func(*rds.Options),
) (*rds.DescribeDBInstancesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rds.DescribeDBInstancesOutput), args.Error(1)
}

type mockS3 struct {
	mock.Mock
	listRegions map[string]string // bucket -> region the listing was sent to
}

func (m *mockS3) ListBuckets(
	ctx context.Context,
	params *s3.ListBucketsInput,
	_ ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListBucketsOutput), args.Error(1)
}

func (m *mockS3) GetBucketLocation(
	ctx context.Context,
	params *s3.GetBucketLocationInput,
	_ ...func(*s3.Options),
) (*s3.GetBucketLocationOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetBucketLocationOutput), args.Error(1)
}

func (m *mockS3) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	var o s3.Options
	for _, fn := range optFns {
		fn(&o)
	}
	if m.listRegions == nil {
		m.listRegions = make(map[string]string)
	}
	m.listRegions[aws.ToString(params.Bucket)] = o.Region

	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) GetMetricStatistics(
	ctx context.Context,
	params *cloudwatch.GetMetricStatisticsInput,
	_ ...func(*cloudwatch.Options),
) (*cloudwatch.GetMetricStatisticsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatch.GetMetricStatisticsOutput), args.Error(1)
}

// forResource matches metric requests for a single dimension value.
func forResource(id string) interface{} {
	return mock.MatchedBy(func(in *cloudwatch.GetMetricStatisticsInput) bool {
		return len(in.Dimensions) == 1 && aws.ToString(in.Dimensions[0].Value) == id
	})
}

func datapoints(averages ...float64) *cloudwatch.GetMetricStatisticsOutput {
	out := &cloudwatch.GetMetricStatisticsOutput{}
	for _, avg := range averages {
		out.Datapoints = append(out.Datapoints, cwtypes.Datapoint{Average: aws.Float64(avg)})
	}
	return out
}
