package domain

import "time"

type Service string

const (
	ServiceEC2 Service = "EC2"
	ServiceRDS Service = "RDS"
	ServiceS3  Service = "S3"
)

// ResourceCostRecord is one row of the resource report.
type ResourceCostRecord struct {
	ResourceID       string  // i-0abc123, orders-db, my-bucket
	Service          Service // EC2
	ResourceType     string  // t3.micro, db.t3.micro, Bucket
	UsageMetric      string  // "CPU 3.20%", "Size 12.50 GB"
	EstimatedCost    float64 // USD per month
	PotentialSavings float64 // USD per month
}

// HasSavings reports whether the record was flagged by the scanner.
func (r ResourceCostRecord) HasSavings() bool {
	return r.PotentialSavings > 0
}

// BucketMeasurement is the sizing outcome of a single bucket. A failed
// listing keeps the error and falls back to zero bytes.
type BucketMeasurement struct {
	Bucket string
	Bytes  int64
	Err    error
}

func (m BucketMeasurement) Degraded() bool {
	return m.Err != nil
}

type UploadResult struct {
	Destination string
	Location    string
	Err         error
}

type ScanResult struct {
	Region     string
	OutputPath string
	StartedAt  time.Time
	Duration   time.Duration
	Records    []ResourceCostRecord
	Buckets    []BucketMeasurement
	Upload     *UploadResult
}

// DegradedBuckets returns the buckets whose size fell back to zero.
func (r ScanResult) DegradedBuckets() []BucketMeasurement {
	var degraded []BucketMeasurement
	for _, b := range r.Buckets {
		if b.Degraded() {
			degraded = append(degraded, b)
		}
	}
	return degraded
}
