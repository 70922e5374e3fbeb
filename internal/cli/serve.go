package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/githubstars"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
	"github.com/educlopez/smoothui-sub003/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveStatic bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr setting)")
	serveCmd.Flags().BoolVar(&serveStatic, "static", false, "Also serve the built site from site.public_dir")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the GitHub stars endpoint and legacy redirects",
	Long: `Start the HTTP server for /api/github-stars, the legacy /doc/<slug>
redirects, /healthz and /metrics. Set GITHUB_TOKEN for higher GitHub rate
limits. The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = config.Get(config.KeyServerAddr)
		}

		slugs, err := redirectSlugs("")
		if err != nil {
			return err
		}

		client := githubstars.New(config.Get(config.KeyGitHubRepo),
			githubstars.WithAPIBase(config.Get(config.KeyGitHubAPIBase)),
			githubstars.WithToken(config.GitHubToken()),
		)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		opts := []server.ServerOption{
			server.WithLogger(slog.Default()),
			server.WithRegistry(reg),
			server.WithRedirects(redirects.Rules(slugs)),
		}
		if serveStatic {
			opts = append(opts, server.WithStatic(config.Get(config.KeyPublicDir)))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("Starting server", "addr", addr, "repo", client.Repo(), "redirects", len(slugs))
		return server.Serve(ctx, addr, server.NewServer(client, opts...), slog.Default())
	},
}
