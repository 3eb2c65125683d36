package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daoforge-io/daoforge/pkg/project"
	"github.com/daoforge-io/daoforge/pkg/template"
)

var (
	renderTemplatesDir string
	renderOutDir       string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Materialize config and script files from the deployment record",
	Long: `Render the project's template directory, substituting placeholders from
the deployment record. Placeholders without a binding yet are left verbatim
and reported — rerun after later steps to finish them.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := project.LoadConfigFile(filepath.Join(projectDir, project.ConfigFile))
	if err != nil {
		return err
	}
	if renderTemplatesDir != "" {
		cfg.Templates.Dir = renderTemplatesDir
	}
	if renderOutDir != "" {
		cfg.Templates.Out = renderOutDir
	}

	_, rec, err := openStore()
	if err != nil {
		return err
	}

	diags, err := project.Generate(projectDir, cfg, rec)
	if err != nil {
		return err
	}
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  ⚠ %s\n", d)
	}
	fmt.Printf("✓ rendered %s into %s\n", cfg.Templates.Dir, cfg.Templates.Out)
	return nil
}

var checkTemplateCmd = &cobra.Command{
	Use:   "check-template <file>",
	Short: "Pre-flight a single template against the current bindings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, rec, err := openStore()
		if err != nil {
			return err
		}
		report := template.Validate(string(content), rec.Bindings())
		if report.AllSatisfied {
			fmt.Printf("✓ all %d placeholder(s) resolve\n", len(report.Required))
			return nil
		}
		fmt.Printf("%d of %d placeholder(s) missing: %s\n",
			len(report.Missing), len(report.Required), strings.Join(report.Missing, ", "))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderTemplatesDir, "templates", "", "override the template directory")
	renderCmd.Flags().StringVar(&renderOutDir, "out", "", "override the output directory")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkTemplateCmd)
}
