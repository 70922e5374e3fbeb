package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/docs"
	"github.com/spf13/cobra"
)

var (
	componentsTagFilter        string
	componentsCollectionFilter string
	componentsJSON             bool
	componentsSchema           bool
)

var componentsCmd = &cobra.Command{
	Use:   "components [query]",
	Short: "List and search component descriptors",
	Long: `List the components showcased on the docs site.

The query matches slugs, titles and descriptions (case-insensitive substring).
Use --tag to filter by tags and --collection to filter by collection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComponents,
}

func init() {
	componentsCmd.Flags().StringVar(&componentsTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	componentsCmd.Flags().StringVar(&componentsCollectionFilter, "collection", "", "Filter by collection")
	componentsCmd.Flags().BoolVar(&componentsJSON, "json", false, "Output in JSON format")
	componentsCmd.Flags().BoolVar(&componentsSchema, "schema", false, "Print the JSON Schema of the descriptor file and exit")
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command, args []string) error {
	if componentsSchema {
		data, err := docs.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	query := docs.Query{
		Tags:       docs.ParseTags(componentsTagFilter),
		Collection: componentsCollectionFilter,
	}
	if len(args) > 0 {
		query.Text = args[0]
	}

	descriptors, err := loadDescriptors(config.Get(config.KeyDescriptors))
	if err != nil {
		return err
	}

	matched := docs.Filter(descriptors, query)
	out := cmd.OutOrStdout()

	if componentsJSON {
		if matched == nil {
			matched = []docs.Descriptor{}
		}
		data, err := json.MarshalIndent(matched, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling components: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(matched) == 0 {
		msg := "No components found"
		if query.Text != "" {
			msg += fmt.Sprintf(" matching %q", query.Text)
		}
		if componentsTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", componentsTagFilter)
		}
		if componentsCollectionFilter != "" {
			msg += fmt.Sprintf(" with --collection=%s", componentsCollectionFilter)
		}
		fmt.Fprintln(out, msg)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tCOLLECTION\tTAGS\tTITLE")
	for _, d := range matched {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Slug, d.Collection, strings.Join(d.Tags, ","), d.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d components\n", len(matched), len(descriptors))
	return nil
}
