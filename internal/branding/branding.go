// Package branding provides compile-time identity values for the site tooling.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. They double as the fixed registry name and homepage
// written into every registry document.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	RegistryName string `yaml:"registry_name"`
	Homepage     string `yaml:"homepage"`
	BaseURL      string `yaml:"base_url"`
	GitHubRepo   string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:      "smoothui",
			DisplayName:  "SmoothUI",
			Description:  "Build tooling for the SmoothUI component registry and docs site",
			HomeDir:      ".smoothui",
			EnvPrefix:    "SMOOTHUI",
			RegistryName: "smoothui",
			Homepage:     "https://smoothui.dev",
			BaseURL:      "https://smoothui.dev",
			GitHubRepo:   "educlopez/smoothui",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "smoothui").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "SmoothUI").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".smoothui").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SMOOTHUI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RegistryName returns the fixed name written into registry documents.
func RegistryName() string { load(); return defaults.RegistryName }

// Homepage returns the fixed homepage written into registry documents.
func Homepage() string { load(); return defaults.Homepage }

// BaseURL returns the canonical site origin used for sitemap URLs.
func BaseURL() string { load(); return defaults.BaseURL }

// GitHubRepo returns the "owner/repo" string (e.g., "educlopez/smoothui").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("LOG_LEVEL") → "SMOOTHUI_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
