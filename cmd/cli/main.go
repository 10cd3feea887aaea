package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/cost-analyzer/pkg/runtime/terminal"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/de-tools/cost-analyzer/pkg/services/cost/aws"
	"github.com/de-tools/cost-analyzer/pkg/services/scan"
	"github.com/de-tools/cost-analyzer/pkg/store/remote"
	"github.com/rs/zerolog"
)

var version = "dev"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	registry := cost.NewRegistry()
	if err := registry.Register(aws.Platform, aws.ControllerFactory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry:  registry,
		Uploaders: s3Uploader,
		Logger:    logger,
		Output:    os.Stdout,
		Version:   version,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func s3Uploader(ctx context.Context, settings config.Settings) (scan.Uploader, error) {
	cfg, err := aws.LoadConfig(ctx, settings.Profile, settings.Region)
	if err != nil {
		return nil, err
	}
	return remote.NewS3Uploader(*cfg), nil
}
