// Package main provides the daoforge binary — a scaffolding wizard that
// provisions a multi-component DataDAO application step by step, persisting
// progress so the workflow is resumable after interruption.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/steps"
	"github.com/daoforge-io/daoforge/pkg/tui"
	"github.com/daoforge-io/daoforge/pkg/validate"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var projectDir string

func main() {
	loadDotEnv() // load .env file if present (gitignored)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads a .env file from the working directory and sets any
// variables that aren't already set in the environment. Lines are KEY=VALUE
// (or KEY="VALUE"). Comments (#) and blanks are skipped. The .env file is
// gitignored so wallet keys never end up in source control.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return // no .env file — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "daoforge",
	Short: "DataDAO project scaffolding wizard",
	Long:  "daoforge — provisions a DataDAO application (contracts, proof service, refiner, UI) through resumable, persisted steps.",
}

// openStore loads the deployment record for the selected project directory,
// translating the typed load errors into operator-facing messages.
func openStore() (*deployment.Store, *deployment.Record, error) {
	store := deployment.NewStore(projectDir)
	rec, err := store.Load()
	if err != nil {
		var parseErr *deployment.ParseError
		if errors.As(err, &parseErr) {
			return nil, nil, fmt.Errorf("%w\nRestore it with: cp %s %s", parseErr, parseErr.BackupPath, parseErr.Path)
		}
		return nil, nil, err
	}
	return store, rec, nil
}

// --- status ---

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show step completion and acquired resources",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, rec, err := openStore()
	if err != nil {
		return err
	}

	if statusJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s (%s / %s)\n\n", rec.ProjectName, rec.TokenName, rec.TokenSymbol)

	// Column width from the longest title so glyph and annotation align.
	width := 0
	for _, s := range deployment.Order {
		if w := runewidth.StringWidth(steps.Title(s)); w > width {
			width = w
		}
	}
	for i, s := range deployment.Order {
		glyph := "○"
		if rec.Completed(s) {
			glyph = "✓"
		}
		annotation := ""
		if entry, ok := rec.Errors[s]; ok {
			glyph = "✗"
			annotation = "  " + entry.Message
		}
		title := steps.Title(s)
		pad := strings.Repeat(" ", width-runewidth.StringWidth(title))
		fmt.Printf("  %s %d. %s%s%s\n", glyph, i+1, title, pad, annotation)
	}

	machine := steps.NewMachine(store, rec)
	if next, ok := machine.NextIncomplete(); ok {
		fmt.Printf("\nNext: daoforge complete %s\n", next)
	} else {
		fmt.Println("\nAll steps complete.")
	}
	return nil
}

// --- next ---

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next incomplete step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rec, err := openStore()
		if err != nil {
			return err
		}
		machine := steps.NewMachine(store, rec)
		next, ok := machine.NextIncomplete()
		if !ok {
			fmt.Println("all steps complete")
			return nil
		}
		fmt.Println(next)
		if err := machine.CheckPreconditions(next); err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠ blocked: %v\n", err)
		}
		return nil
	},
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the deployment record (structural, semantic, configuration)",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	rec, findings := validate.Project(projectDir)

	var hard []*validate.ValidationError
	var warnings []*validate.ValidationError
	for _, e := range findings {
		if e.Severity == "warning" {
			warnings = append(warnings, e)
		} else {
			hard = append(hard, e)
		}
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", w.Phase, w.Message)
	}
	if len(hard) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(hard))
		for i, e := range hard {
			fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
			if e.Path != "" {
				fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
			}
		}
		return fmt.Errorf("validation failed with %d error(s)", len(hard))
	}
	fmt.Printf("✓ %s deployment record is valid\n", rec.ProjectName)
	return nil
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for deployment.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := validate.GenerateRecordJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// --- wizard ---

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Browse provisioning progress in an interactive TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rec, err := openStore()
		if err != nil {
			return err
		}
		return tui.Run(store, rec)
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daoforge %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "project directory")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "emit the raw record as JSON")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(versionCmd)
}
