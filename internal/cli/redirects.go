package cli

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
	"github.com/spf13/cobra"
)

const redirectsFileName = "redirects.json"

var (
	redirectsSource string
	redirectsOut    string
)

func init() {
	redirectsCmd.Flags().StringVar(&redirectsSource, "source", "", "Scan this file for slug entries instead of the descriptor file")
	redirectsCmd.Flags().StringVarP(&redirectsOut, "out", "o", "", "Output file, - for stdout (default: <site.public_dir>/redirects.json)")
	rootCmd.AddCommand(redirectsCmd)
}

var redirectsCmd = &cobra.Command{
	Use:   "redirects",
	Short: "Generate permanent redirects from legacy component URLs",
	Long: `Generate one permanent redirect per component slug, from /doc/<slug> to
/doc/components/<slug>.

Slugs come from the descriptor file when it exists. Otherwise the
redirects.source file is scanned for slug: "..." entries; a missing source
produces no redirects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slugs, err := redirectSlugs(redirectsSource)
		if err != nil {
			return err
		}

		rules := redirects.Rules(slugs)
		var buf bytes.Buffer
		if err := redirects.WriteJSON(&buf, rules); err != nil {
			return err
		}

		out := redirectsOut
		if out == "" {
			out = redirectsPath()
		}
		return emit(cmd.OutOrStdout(), out, buf.Bytes(), fmt.Sprintf("Wrote %d redirects", len(rules)))
	},
}

func redirectsPath() string {
	return filepath.Join(config.Get(config.KeyPublicDir), redirectsFileName)
}
