package cli

import (
	"encoding/json"
	"fmt"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/registry"
	"github.com/spf13/cobra"
)

var (
	registryFile   string
	registryOutDir string
	checkJSON      bool
	treeFlat       bool
)

func init() {
	registryCmd.PersistentFlags().StringVarP(&registryFile, "file", "f", "", "Definition file (default: registry.file setting)")
	registryBuildCmd.Flags().StringVarP(&registryOutDir, "out", "o", "", "Output directory (default: registry.out_dir setting)")
	registryCheckCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the report as JSON")
	registryTreeCmd.Flags().BoolVar(&treeFlat, "flat", false, "Print install order (dependencies first) instead of a tree")

	registryCmd.AddCommand(registryBuildCmd)
	registryCmd.AddCommand(registryCheckCmd)
	registryCmd.AddCommand(registryTreeCmd)
	rootCmd.AddCommand(registryCmd)
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Build and inspect the component registry",
}

var registryBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build registry.json and per-item documents",
	Long: `Read every component definition, inline its source files and write
registry.json plus one <name>.json per item. Nothing is written if any file
cannot be read or the link check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defPath := definitionFile()
		reg, err := checkedRegistry(defPath)
		if err != nil {
			return err
		}

		outDir := registryOutDir
		if outDir == "" {
			outDir = config.Get(config.KeyRegistryOutDir)
		}
		written, err := writeRegistry(reg, defPath, outDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s (%d items)\n", len(written), outDir, len(reg.Items))
		return nil
	},
}

var registryCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check registry dependencies for integrity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(definitionFile())
		if err != nil {
			return err
		}

		report := registry.Check(reg)
		out := cmd.OutOrStdout()

		if checkJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling report: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "%-7s %s: %s\n", issue.Severity, issue.Item, issue.Message)
			}
			errs, warnings := report.Counts()
			fmt.Fprintf(out, "%d items, %d errors, %d warnings\n", len(reg.Items), errs, warnings)
		}

		if report.HasErrors() {
			return checkError(report)
		}
		return nil
	},
}

var registryTreeCmd = &cobra.Command{
	Use:   "tree <name>",
	Short: "Show the registry dependency tree of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(definitionFile())
		if err != nil {
			return err
		}

		root, err := registry.BuildTree(reg, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if treeFlat {
			for i, item := range registry.FlattenTree(root) {
				fmt.Fprintf(out, "%d. %s (%s)\n", i+1, item.Name, item.Type)
			}
			return nil
		}

		registry.PrintTree(out, root, "", true)
		return nil
	},
}

func definitionFile() string {
	if registryFile != "" {
		return registryFile
	}
	return config.Get(config.KeyRegistryFile)
}
