package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/services/config"
	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/spf13/cobra"
)

type ResourcesCmd struct {
	platform string
	profile  string
	region   string
	registry cost.Registry
}

func NewResourcesCmd(registry cost.Registry) *cobra.Command {
	rc := &ResourcesCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List supported resource types for a platform",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.platform, "platform", "aws", "Platform to list resources for")
	cmd.Flags().StringVar(&rc.profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&rc.region, "region", config.DefaultRegion, "AWS region")

	return cmd
}

func (rc *ResourcesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := checkPlatform(rc.registry, rc.platform); err != nil {
		return err
	}

	ctrl, err := rc.registry.Create(ctx, rc.platform, config.Settings{Profile: rc.profile, Region: rc.region})
	if err != nil {
		return fmt.Errorf("failed to create controller for platform %s: %w", rc.platform, err)
	}

	resources := ctrl.GetSupportedResources()
	if len(resources) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No supported resources found for platform: %s\n", rc.platform)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Supported resources for %s:\n%s\n",
		rc.platform,
		strings.Join(resources, "\n"))

	return nil
}
