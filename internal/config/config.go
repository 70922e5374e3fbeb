package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/educlopez/smoothui-sub003/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyBaseURL         = "site.base_url"
	KeyRegistryFile    = "registry.file"
	KeyRegistryOutDir  = "registry.out_dir"
	KeyDescriptors     = "docs.descriptors"
	KeyRedirectsSource = "redirects.source"
	KeyPublicDir       = "site.public_dir"
	KeyServerAddr      = "server.addr"
	KeyGitHubRepo      = "github.repo"
	KeyGitHubAPIBase   = "github.api_base"
	KeyLogLevel        = "log.level"
)

// Dir returns the path to the config directory (~/.smoothui/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.smoothui/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// setDefaults registers the built-in defaults. Paths are relative to the
// working directory the build runs in.
func setDefaults() {
	viper.SetDefault(KeyBaseURL, branding.BaseURL())
	viper.SetDefault(KeyRegistryFile, "registry.yaml")
	viper.SetDefault(KeyRegistryOutDir, filepath.Join("public", "r"))
	viper.SetDefault(KeyDescriptors, "components.yaml")
	viper.SetDefault(KeyRedirectsSource, filepath.Join("app", "doc", "data", "components.ts"))
	viper.SetDefault(KeyPublicDir, "public")
	viper.SetDefault(KeyServerAddr, ":8080")
	viper.SetDefault(KeyGitHubRepo, branding.GitHubRepo())
	viper.SetDefault(KeyGitHubAPIBase, "https://api.github.com")
	viper.SetDefault(KeyLogLevel, "info")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GitHubToken returns the optional token used to raise GitHub API rate limits.
func GitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}
