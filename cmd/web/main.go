package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/cost-analyzer/pkg/server"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/dashboard"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var reportPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the cost report dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&reportPath, "report", "r", "",
		"Default report file (default $REPORT_PATH or "+config.DefaultReportFile+")")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if reportPath == "" {
		reportPath = envOr("REPORT_PATH", config.DefaultReportFile)
	}
	addr := net.JoinHostPort(envOr("SERVER_HOST", "127.0.0.1"), envOr("SERVER_PORT", "8501"))

	logger.Info().Str("report", reportPath).Msg("default report path")

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Dashboard: dashboard.NewService(dashboard.NewLoader(), reportPath),
		},
	})
	return api.Start()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
