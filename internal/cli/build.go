package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the registry, sitemap and redirects in one pass",
	Long: `Build every generated artifact of the site:

  <registry.out_dir>/registry.json and <name>.json per item
  <site.public_dir>/sitemap.xml
  <site.public_dir>/redirects.json

All inputs are read and checked and the sitemap and redirects are staged
before the registry is published. A failure before that point leaves
previous output untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defPath := config.Get(config.KeyRegistryFile)
		reg, err := checkedRegistry(defPath)
		if err != nil {
			return err
		}

		descriptors, err := loadDescriptors(config.Get(config.KeyDescriptors))
		if err != nil {
			return err
		}
		sitemapXML, err := renderSitemap(descriptors, "xml")
		if err != nil {
			return err
		}

		rules := redirects.Rules(redirects.FromDescriptors(descriptors))
		var redirectsJSON bytes.Buffer
		if err := redirects.WriteJSON(&redirectsJSON, rules); err != nil {
			return err
		}

		sitemapTmp, err := stageFile(sitemapPath("xml"), sitemapXML)
		if err != nil {
			return err
		}
		redirectsTmp, err := stageFile(redirectsPath(), redirectsJSON.Bytes())
		if err != nil {
			_ = os.Remove(sitemapTmp)
			return err
		}

		outDir := config.Get(config.KeyRegistryOutDir)
		written, err := writeRegistry(reg, defPath, outDir)
		if err != nil {
			_ = os.Remove(sitemapTmp)
			_ = os.Remove(redirectsTmp)
			return err
		}
		if err := commitFile(sitemapTmp, sitemapPath("xml")); err != nil {
			_ = os.Remove(redirectsTmp)
			return err
		}
		if err := commitFile(redirectsTmp, redirectsPath()); err != nil {
			return err
		}

		slog.Info("Build complete",
			"items", len(reg.Items),
			"sitemap_entries", len(descriptors)+2,
			"redirects", len(rules),
		)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Registry:  %d items (%d files in %s)\n", len(reg.Items), len(written), outDir)
		fmt.Fprintf(out, "Sitemap:   %d entries (%s)\n", len(descriptors)+2, sitemapPath("xml"))
		fmt.Fprintf(out, "Redirects: %d rules (%s)\n", len(rules), redirectsPath())
		return nil
	},
}
