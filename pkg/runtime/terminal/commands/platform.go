package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/services/cost"
	"github.com/samber/lo"
)

func checkPlatform(registry cost.Registry, platform string) error {
	platforms := registry.ListPlatforms()
	if !lo.Contains(platforms, platform) {
		return fmt.Errorf("unknown platform %q. Available platforms: %s", platform, strings.Join(platforms, ", "))
	}
	return nil
}
