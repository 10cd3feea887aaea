package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"gopkg.in/ini.v1"
)

type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	HasProfile(ctx context.Context, name string) (bool, error)
}

type cfgRegistry struct {
	configPath      string
	credentialsPath string
}

// NewRegistry reads AWS profiles from the shared config and credentials
// files. Empty paths fall back to AWS_CONFIG_FILE / AWS_SHARED_CREDENTIALS_FILE
// and then to ~/.aws.
func NewRegistry(configPath, credentialsPath string) Registry {
	home, _ := os.UserHomeDir()
	if configPath == "" {
		configPath = envOr("AWS_CONFIG_FILE", filepath.Join(home, ".aws", "config"))
	}
	if credentialsPath == "" {
		credentialsPath = envOr("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(home, ".aws", "credentials"))
	}
	return &cfgRegistry{configPath: configPath, credentialsPath: credentialsPath}
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	seen := make(map[string]bool)
	var profiles []domain.ConfigProfile

	configFile, err := loadOptional(cr.configPath)
	if err != nil {
		return nil, err
	}
	if configFile != nil {
		for _, section := range configFile.Sections() {
			name, ok := configProfileName(section.Name())
			if !ok || len(section.Keys()) == 0 || seen[name] {
				continue
			}
			seen[name] = true
			profiles = append(profiles, domain.ConfigProfile{
				Name:   name,
				Type:   domain.ProfileTypeConfig,
				Region: section.Key("region").String(),
			})
		}
	}

	credsFile, err := loadOptional(cr.credentialsPath)
	if err != nil {
		return nil, err
	}
	if credsFile != nil {
		for _, section := range credsFile.Sections() {
			name := section.Name()
			if name == ini.DefaultSection || len(section.Keys()) == 0 || seen[name] {
				continue
			}
			seen[name] = true
			profiles = append(profiles, domain.ConfigProfile{
				Name: name,
				Type: domain.ProfileTypeCredentials,
			})
		}
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

func (cr *cfgRegistry) HasProfile(ctx context.Context, name string) (bool, error) {
	profiles, err := cr.GetProfiles(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// configProfileName strips the "profile " prefix used by ~/.aws/config.
func configProfileName(section string) (string, bool) {
	switch {
	case strings.HasPrefix(section, "profile "):
		return strings.TrimSpace(strings.TrimPrefix(section, "profile ")), true
	case section == "default":
		return section, true
	default:
		// sso-session and services sections are not profiles
		return "", false
	}
}

func loadOptional(path string) (*ini.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
