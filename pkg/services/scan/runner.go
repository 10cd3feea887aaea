package scan

import (
	"context"
	"fmt"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/de-tools/cost-analyzer/pkg/store/report"
	"github.com/rs/zerolog"
)

type Uploader interface {
	Upload(ctx context.Context, destination, path string) (string, error)
}

// Runner executes a scan, persists the report and optionally ships it.
type Runner struct {
	controller cost.Controller
	uploader   Uploader
	settings   config.Settings
}

// NewRunner creates a runner. uploader may be nil when uploads are disabled.
func NewRunner(controller cost.Controller, uploader Uploader, settings config.Settings) *Runner {
	return &Runner{
		controller: controller,
		uploader:   uploader,
		settings:   settings,
	}
}

// Run scans every supported resource type.
func (r *Runner) Run(ctx context.Context) (*domain.ScanResult, error) {
	result, err := r.controller.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, result)
}

// RunResource scans a single resource type.
func (r *Runner) RunResource(ctx context.Context, resourceType string) (*domain.ScanResult, error) {
	result, err := r.controller.ScanResource(ctx, resourceType)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, result)
}

func (r *Runner) finish(ctx context.Context, result *domain.ScanResult) (*domain.ScanResult, error) {
	logger := zerolog.Ctx(ctx)

	result.Region = r.settings.Region
	result.OutputPath = r.settings.OutputPath

	if err := report.WriteFile(r.settings.OutputPath, result.Records); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info().
		Str("path", r.settings.OutputPath).
		Int("rows", len(result.Records)).
		Msg("Report written")

	if !r.settings.Upload.Enabled {
		return result, nil
	}

	upload := &domain.UploadResult{Destination: r.settings.Upload.Destination}
	if r.uploader == nil {
		upload.Err = fmt.Errorf("no uploader configured")
	} else {
		upload.Location, upload.Err = r.uploader.Upload(ctx, upload.Destination, r.settings.OutputPath)
	}
	if upload.Err != nil {
		logger.Warn().Err(upload.Err).Str("destination", upload.Destination).Msg("Report upload failed")
	}
	result.Upload = upload

	return result, nil
}
