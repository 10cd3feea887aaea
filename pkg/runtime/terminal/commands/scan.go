package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/runtime/terminal/export"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/de-tools/cost-analyzer/pkg/services/scan"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// UploaderFactory builds the report uploader for a run with uploads enabled.
type UploaderFactory func(ctx context.Context, settings config.Settings) (scan.Uploader, error)

type ScanCmd struct {
	configPath   string
	platform     string
	resourceType string
	timeout      time.Duration
	registry     cost.Registry
	uploaders    UploaderFactory
	reporter     *export.Reporter
	logger       zerolog.Logger
}

func NewScanCmd(
	registry cost.Registry,
	uploaders UploaderFactory,
	reporter *export.Reporter,
	logger zerolog.Logger,
) *cobra.Command {
	sc := &ScanCmd{
		registry:  registry,
		uploaders: uploaders,
		reporter:  reporter,
		logger:    logger,
	}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan EC2, RDS and S3 resources and write the cost report",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "Path to a settings file (yaml, toml or ini)")
	cmd.Flags().StringVar(&sc.platform, "platform", "aws", "Platform to scan")
	cmd.Flags().StringVar(&sc.resourceType, "resource-type", "", "Scan a single resource type (EC2, RDS or S3)")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 30*time.Minute, "Upper bound for the whole scan")

	cmd.Flags().String("profile", "", "AWS shared config profile")
	cmd.Flags().String("region", "", "AWS region (default "+config.DefaultRegion+")")
	cmd.Flags().StringP("output", "o", "", "Report file path (default "+config.DefaultReportFile+")")
	cmd.Flags().Bool("upload", false, "Upload the report after writing it")
	cmd.Flags().String("upload-to", "", "Upload destination, s3://bucket/key")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, _ []string) error {
	if err := checkPlatform(sc.registry, sc.platform); err != nil {
		return err
	}

	settings, err := config.LoadSettings(sc.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(sc.logger.WithContext(cmd.Context()), sc.timeout)
	defer cancel()

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	sp.Suffix = fmt.Sprintf(" Scanning %s resources in %s...", sc.platform, settings.Region)
	sp.Start()

	result, err := sc.scan(ctx, *settings)
	sp.Stop()
	if err != nil {
		return err
	}

	return sc.reporter.Handle(result)
}

func (sc *ScanCmd) scan(ctx context.Context, settings config.Settings) (*domain.ScanResult, error) {
	ctrl, err := sc.registry.Create(ctx, sc.platform, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller for platform %s: %w", sc.platform, err)
	}

	var uploader scan.Uploader
	if settings.Upload.Enabled && sc.uploaders != nil {
		uploader, err = sc.uploaders(ctx, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to create report uploader: %w", err)
		}
	}

	runner := scan.NewRunner(ctrl, uploader, settings)
	if sc.resourceType == "" {
		return runner.Run(ctx)
	}

	supported := ctrl.GetSupportedResources()
	for _, r := range supported {
		if r == sc.resourceType {
			return runner.RunResource(ctx, sc.resourceType)
		}
	}
	return nil, fmt.Errorf("unsupported resource type %q for platform %q. Supported types: %v",
		sc.resourceType, sc.platform, supported)
}
