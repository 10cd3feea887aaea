package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeConfig      ProfileType = "config"
	ProfileTypeCredentials ProfileType = "credentials"
)

// ConfigProfile is a named AWS profile found in the shared config files.
type ConfigProfile struct {
	Name   string
	Type   ProfileType
	Region string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}

// EstimationRates are the static rates and thresholds used to model monthly
// cost and savings.
type EstimationRates struct {
	EC2Hourly             float64 `mapstructure:"ec2_hourly"`
	RDSHourly             float64 `mapstructure:"rds_hourly"`
	S3PerGB               float64 `mapstructure:"s3_per_gb"`
	HoursPerMonth         float64 `mapstructure:"hours_per_month"`
	IdleCPUThreshold      float64 `mapstructure:"idle_cpu_threshold"`       // percent
	BucketSizeThresholdGB float64 `mapstructure:"bucket_size_threshold_gb"` // Glacier suggestion
	S3SavingsFraction     float64 `mapstructure:"s3_savings_fraction"`
}

// MetricWindow describes the CloudWatch query used for utilization.
type MetricWindow struct {
	LookbackDays  int   `mapstructure:"lookback_days"`
	PeriodSeconds int32 `mapstructure:"period_seconds"`
}

func DefaultEstimationRates() EstimationRates {
	return EstimationRates{
		EC2Hourly:             0.023, // t2.micro
		RDSHourly:             0.041, // db.t3.micro
		S3PerGB:               0.023, // standard storage
		HoursPerMonth:         730,
		IdleCPUThreshold:      5,
		BucketSizeThresholdGB: 1,
		S3SavingsFraction:     0.5,
	}
}

func DefaultMetricWindow() MetricWindow {
	return MetricWindow{LookbackDays: 7, PeriodSeconds: 3600}
}
