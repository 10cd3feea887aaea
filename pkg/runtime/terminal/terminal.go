package terminal

import (
	"io"
	"os"

	"github.com/de-tools/cost-analyzer/pkg/runtime/terminal/commands"
	"github.com/de-tools/cost-analyzer/pkg/runtime/terminal/export"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry  cost.Registry
	uploaders commands.UploaderFactory
	reporter  *export.Reporter
	logger    zerolog.Logger
	version   string
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry  cost.Registry
	Uploaders commands.UploaderFactory
	Logger    zerolog.Logger
	Output    io.Writer
	Version   string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	cli := &CLI{
		registry:  opts.Registry,
		uploaders: opts.Uploaders,
		reporter:  export.NewReporter(opts.Output),
		logger:    opts.Logger,
		version:   opts.Version,
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cost-analyzer",
		Short:         "Estimate AWS resource cost and idle savings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(commands.NewScanCmd(cli.registry, cli.uploaders, cli.reporter, cli.logger))
	cmd.AddCommand(commands.NewResourcesCmd(cli.registry))
	cmd.AddCommand(commands.NewProfilesCmd(cli.reporter))
	cmd.AddCommand(commands.NewVersionCmd(cli.version))

	return cmd
}
