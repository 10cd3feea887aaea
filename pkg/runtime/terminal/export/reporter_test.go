package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	result := &domain.ScanResult{
		Region:     "ap-south-1",
		OutputPath: "aws_resource_report.csv",
		StartedAt:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		Records: []domain.ResourceCostRecord{
			{
				ResourceID: "i-0abc", Service: domain.ServiceEC2, ResourceType: "t3.micro",
				UsageMetric: "CPU 2.00%", EstimatedCost: 16.79, PotentialSavings: 16.79,
			},
			{
				ResourceID: "logs", Service: domain.ServiceS3, ResourceType: "Bucket",
				UsageMetric: "Size 0.50 GB", EstimatedCost: 0.01,
			},
		},
		Buckets: []domain.BucketMeasurement{
			{Bucket: "logs", Bytes: 512},
			{Bucket: "locked", Err: errors.New("AccessDenied")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(result))
	out := buf.String()

	assert.Contains(t, out, "AWS resource scan (ap-south-1)")
	assert.Contains(t, out, "Started: 2024-03-01 10:30:00  Duration: 1.5s")
	assert.Contains(t, out, "Report: aws_resource_report.csv")
	assert.Contains(t, out, "| i-0abc ")
	assert.Contains(t, out, "CPU 2.00%")
	assert.Contains(t, out, "Total Estimated Monthly Cost:    $16.80")
	assert.Contains(t, out, "Total Potential Monthly Savings: $16.79")
	assert.Contains(t, out, "Resources With Savings:          1 of 2")
	assert.Contains(t, out, "  - locked: AccessDenied")
	assert.NotContains(t, out, "Upload")
}

func TestReporter_HandleUpload(t *testing.T) {
	tests := []struct {
		name   string
		upload *domain.UploadResult
		want   string
	}{
		{
			name:   "uploaded",
			upload: &domain.UploadResult{Destination: "s3://reports/", Location: "https://reports.s3/aws_resource_report.csv"},
			want:   "Uploaded to https://reports.s3/aws_resource_report.csv",
		},
		{
			name:   "failed",
			upload: &domain.UploadResult{Destination: "s3://reports/", Err: errors.New("NoSuchBucket")},
			want:   "Upload to s3://reports/ failed: NoSuchBucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewReporter(&buf).Handle(&domain.ScanResult{Region: "us-east-1", Upload: tt.upload})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "Resources With Savings:          0 of 0")
		})
	}
}

func TestReporter_HandleProfiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).HandleProfiles(nil))
	assert.Equal(t, "No AWS profiles found\n", buf.String())

	buf.Reset()
	err := NewReporter(&buf).HandleProfiles([]domain.ConfigProfile{
		{Name: "default", Type: domain.ProfileTypeConfig, Region: "eu-west-1"},
		{Name: "ci", Type: domain.ProfileTypeCredentials},
	})
	require.NoError(t, err)
	assert.Equal(t, "config:default (eu-west-1)\ncredentials:ci\n", buf.String())
}
