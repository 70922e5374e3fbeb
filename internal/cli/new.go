package cli

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/manifest"
	"github.com/educlopez/smoothui-sub003/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newStyle bool
	newDir   string
)

func init() {
	newCmd.Flags().BoolVar(&newStyle, "style", false, "Scaffold a style preset instead of a UI component")
	newCmd.Flags().StringVar(&newDir, "dir", "components", "Parent directory, relative to the definition file")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new component",
	Long: `Scaffold a new component source stub and print the definition to add to
registry.yaml.

Examples:
  smoothui new magnetic-button
  smoothui new soft-shadows --style --dir styles`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		itemType := manifest.TypeUI
		if newStyle {
			itemType = manifest.TypeStyle
		}

		rel := path.Join(filepath.ToSlash(newDir), name)
		defDir := filepath.Dir(config.Get(config.KeyRegistryFile))
		outDir := filepath.Join(defDir, filepath.FromSlash(rel))

		data := scaffold.NewScaffoldData(name, itemType, rel)
		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s in %s\n", name, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}

		fmt.Fprintf(out, "\nAdd to the items list of %s:\n\n%s", config.Get(config.KeyRegistryFile), result.Definition)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Implement the component")
		fmt.Fprintf(out, "  2. Run '%s registry check'\n", rootCmd.Name())
		return nil
	},
}
