package cli

import (
	"log/slog"

	"github.com/educlopez/smoothui-sub003/internal/branding"
	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds the installable component registry, the sitemap and the
legacy redirect table of the documentation site, and serves its API endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel)))
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("Command failed", "error", err)
	}
	return err
}
