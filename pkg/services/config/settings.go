package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "COST_ANALYZER"
	DefaultRegion     = "ap-south-1"
	DefaultReportFile = "aws_resource_report.csv"
)

type UploadSettings struct {
	Enabled     bool   `mapstructure:"enabled"`
	Destination string `mapstructure:"destination"` // s3://bucket/key
}

// Settings configures a scanner run.
type Settings struct {
	Profile    string                 `mapstructure:"profile"`
	Region     string                 `mapstructure:"region"`
	OutputPath string                 `mapstructure:"output_path"`
	Upload     UploadSettings         `mapstructure:"upload"`
	Rates      domain.EstimationRates `mapstructure:"rates"`
	Metrics    domain.MetricWindow    `mapstructure:"metrics"`
}

// flagKeys maps command line flags onto settings keys.
var flagKeys = map[string]string{
	"profile":   "profile",
	"region":    "region",
	"output":    "output_path",
	"upload":    "upload.enabled",
	"upload-to": "upload.destination",
}

// LoadSettings merges defaults, an optional config file, COST_ANALYZER_*
// environment variables and explicitly set flags, in increasing priority.
func LoadSettings(configPath string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.Region) == "" {
		return fmt.Errorf("region is required")
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		return fmt.Errorf("output path is required")
	}
	if s.Upload.Enabled {
		if s.Upload.Destination == "" {
			return fmt.Errorf("upload is enabled but upload.destination is not set")
		}
		if !strings.HasPrefix(s.Upload.Destination, "s3://") {
			return fmt.Errorf("upload destination %q must be an s3:// URL", s.Upload.Destination)
		}
	}

	r := s.Rates
	for name, v := range map[string]float64{
		"rates.ec2_hourly":               r.EC2Hourly,
		"rates.rds_hourly":               r.RDSHourly,
		"rates.s3_per_gb":                r.S3PerGB,
		"rates.idle_cpu_threshold":       r.IdleCPUThreshold,
		"rates.bucket_size_threshold_gb": r.BucketSizeThresholdGB,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	if r.HoursPerMonth <= 0 {
		return fmt.Errorf("rates.hours_per_month must be positive, got %v", r.HoursPerMonth)
	}
	if r.S3SavingsFraction < 0 || r.S3SavingsFraction > 1 {
		return fmt.Errorf("rates.s3_savings_fraction must be within [0, 1], got %v", r.S3SavingsFraction)
	}

	if s.Metrics.LookbackDays <= 0 {
		return fmt.Errorf("metrics.lookback_days must be positive, got %d", s.Metrics.LookbackDays)
	}
	if s.Metrics.PeriodSeconds <= 0 || s.Metrics.PeriodSeconds%60 != 0 {
		return fmt.Errorf("metrics.period_seconds must be a positive multiple of 60, got %d", s.Metrics.PeriodSeconds)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	rates := domain.DefaultEstimationRates()
	window := domain.DefaultMetricWindow()

	v.SetDefault("profile", "")
	v.SetDefault("region", DefaultRegion)
	v.SetDefault("output_path", DefaultReportFile)
	v.SetDefault("upload.enabled", false)
	v.SetDefault("upload.destination", "")

	v.SetDefault("rates.ec2_hourly", rates.EC2Hourly)
	v.SetDefault("rates.rds_hourly", rates.RDSHourly)
	v.SetDefault("rates.s3_per_gb", rates.S3PerGB)
	v.SetDefault("rates.hours_per_month", rates.HoursPerMonth)
	v.SetDefault("rates.idle_cpu_threshold", rates.IdleCPUThreshold)
	v.SetDefault("rates.bucket_size_threshold_gb", rates.BucketSizeThresholdGB)
	v.SetDefault("rates.s3_savings_fraction", rates.S3SavingsFraction)

	v.SetDefault("metrics.lookback_days", window.LookbackDays)
	v.SetDefault("metrics.period_seconds", window.PeriodSeconds)
}
