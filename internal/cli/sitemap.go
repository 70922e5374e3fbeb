package cli

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/docs"
	"github.com/educlopez/smoothui-sub003/internal/sitemap"
	"github.com/spf13/cobra"
)

var (
	sitemapFormat string
	sitemapOut    string
)

func init() {
	sitemapCmd.Flags().StringVar(&sitemapFormat, "format", "xml", "Output format: xml or json")
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "", "Output file, - for stdout (default: <site.public_dir>/sitemap.<format>)")
	rootCmd.AddCommand(sitemapCmd)
}

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate the sitemap from component descriptors",
	Long: `Emit the site root, the docs index and one page per component descriptor,
in descriptor order, with the build time as last modification.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptors, err := loadDescriptors(config.Get(config.KeyDescriptors))
		if err != nil {
			return err
		}

		data, err := renderSitemap(descriptors, sitemapFormat)
		if err != nil {
			return err
		}

		out := sitemapOut
		if out == "" {
			out = sitemapPath(sitemapFormat)
		}
		return emit(cmd.OutOrStdout(), out, data, fmt.Sprintf("Wrote %d sitemap entries", len(descriptors)+2))
	},
}

func renderSitemap(descriptors []docs.Descriptor, format string) ([]byte, error) {
	entries := sitemap.Emit(descriptors, config.Get(config.KeyBaseURL), now())

	var buf bytes.Buffer
	switch format {
	case "xml":
		if err := sitemap.WriteXML(&buf, entries); err != nil {
			return nil, err
		}
	case "json":
		if err := sitemap.WriteJSON(&buf, entries); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported sitemap format %q (valid: xml, json)", format)
	}
	return buf.Bytes(), nil
}

func sitemapPath(format string) string {
	return filepath.Join(config.Get(config.KeyPublicDir), "sitemap."+format)
}

// emit writes data to path, or to w when path is "-".
func emit(w io.Writer, path string, data []byte, summary string) error {
	if path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s to %s\n", summary, path)
	return nil
}
