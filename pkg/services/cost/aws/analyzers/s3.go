package analyzers

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

const bytesPerGB = 1024 * 1024 * 1024

type BucketAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(
		ctx context.Context,
		params *s3.GetBucketLocationInput,
		optFns ...func(*s3.Options),
	) (*s3.GetBucketLocationOutput, error)
	s3.ListObjectsV2APIClient
}

type s3Analyzer struct {
	client BucketAPI
	rates  domain.EstimationRates
}

func NewS3Analyzer(cfg awssdk.Config, rates domain.EstimationRates) *s3Analyzer {
	return newS3Analyzer(s3.NewFromConfig(cfg), rates)
}

func newS3Analyzer(client BucketAPI, rates domain.EstimationRates) *s3Analyzer {
	return &s3Analyzer{client: client, rates: rates}
}

func (a *s3Analyzer) GetResourceType() string {
	return string(domain.ServiceS3)
}

func (a *s3Analyzer) CollectUsage(ctx context.Context) ([]domain.ResourceCostRecord, error) {
	records, _, err := a.CollectMeasuredUsage(ctx)
	return records, err
}

// CollectMeasuredUsage prices every bucket and also returns how each bucket
// was sized, so callers can tell a real empty bucket from a failed listing.
func (a *s3Analyzer) CollectMeasuredUsage(
	ctx context.Context,
) ([]domain.ResourceCostRecord, []domain.BucketMeasurement, error) {
	measurements, err := a.MeasureBuckets(ctx)
	if err != nil {
		return nil, nil, err
	}

	records := make([]domain.ResourceCostRecord, 0, len(measurements))
	for _, m := range measurements {
		records = append(records, a.estimate(m))
	}
	return records, measurements, nil
}

// MeasureBuckets lists all buckets visible to the account and sums object
// sizes per bucket. Only the bucket listing itself is fatal.
func (a *s3Analyzer) MeasureBuckets(ctx context.Context) ([]domain.BucketMeasurement, error) {
	logger := zerolog.Ctx(ctx)

	out, err := a.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", err)
	}

	measurements := make([]domain.BucketMeasurement, 0, len(out.Buckets))
	var total int64
	for _, bucket := range out.Buckets {
		name := awssdk.ToString(bucket.Name)

		size, err := a.bucketSize(ctx, name, a.bucketRegion(ctx, name))
		if err != nil {
			logger.Warn().Err(err).Str("bucket", name).Msg("unable to size bucket, reporting it as empty")
			measurements = append(measurements, domain.BucketMeasurement{Bucket: name, Err: err})
			continue
		}

		logger.Debug().Str("bucket", name).Str("size", humanize.IBytes(uint64(size))).Msg("bucket sized")
		measurements = append(measurements, domain.BucketMeasurement{Bucket: name, Bytes: size})
		total += size
	}

	logger.Info().
		Int("buckets", len(measurements)).
		Str("total_size", humanize.IBytes(uint64(total))).
		Msg("S3 buckets analyzed")
	return measurements, nil
}

// bucketRegion resolves where a bucket lives. ListObjectsV2 against the
// wrong regional endpoint fails with PermanentRedirect, so every listing is
// sent to the bucket's own region. An empty result keeps the client region.
func (a *s3Analyzer) bucketRegion(ctx context.Context, bucket string) string {
	out, err := a.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: awssdk.String(bucket),
	})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("bucket", bucket).Msg("bucket location unknown, using client region")
		return ""
	}

	switch out.LocationConstraint {
	case "":
		return "us-east-1"
	case s3types.BucketLocationConstraintEu:
		return "eu-west-1"
	default:
		return string(out.LocationConstraint)
	}
}

func (a *s3Analyzer) bucketSize(ctx context.Context, bucket, region string) (int64, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: awssdk.String(bucket),
	})

	var optFns []func(*s3.Options)
	if region != "" {
		optFns = append(optFns, func(o *s3.Options) { o.Region = region })
	}

	var size int64
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, optFns...)
		if err != nil {
			return 0, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			size += awssdk.ToInt64(obj.Size)
		}
	}
	return size, nil
}

func (a *s3Analyzer) estimate(m domain.BucketMeasurement) domain.ResourceCostRecord {
	sizeGB := float64(m.Bytes) / bytesPerGB
	cost := sizeGB * a.rates.S3PerGB

	var savings float64
	if sizeGB > a.rates.BucketSizeThresholdGB {
		savings = cost * a.rates.S3SavingsFraction
	}

	return domain.ResourceCostRecord{
		ResourceID:       m.Bucket,
		Service:          domain.ServiceS3,
		ResourceType:     "Bucket",
		UsageMetric:      fmt.Sprintf("Size %.2f GB", sizeGB),
		EstimatedCost:    cost,
		PotentialSavings: savings,
	}
}
