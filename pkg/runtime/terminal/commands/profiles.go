package commands

import (
	"fmt"

	"github.com/de-tools/cost-analyzer/pkg/runtime/terminal/export"
	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	configPath      string
	credentialsPath string
	reporter        *export.Reporter
}

func NewProfilesCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProfilesCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List AWS profiles from the shared config and credentials files",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.configPath, "aws-config", "", "AWS config file (default $AWS_CONFIG_FILE or ~/.aws/config)")
	cmd.Flags().StringVar(&pc.credentialsPath, "aws-credentials", "",
		"AWS credentials file (default $AWS_SHARED_CREDENTIALS_FILE or ~/.aws/credentials)")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	profiles, err := config.NewRegistry(pc.configPath, pc.credentialsPath).GetProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read AWS profiles: %w", err)
	}
	return pc.reporter.HandleProfiles(profiles)
}
