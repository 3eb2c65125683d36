package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/recovery"
	"github.com/daoforge-io/daoforge/pkg/steps"
)

var failMessage string

// fail records an external action's failure against a step. The error is
// captured, never thrown: `daoforge errors` later maps it to remediation.
var failCmd = &cobra.Command{
	Use:       "fail <step>",
	Short:     "Record a step failure reported by an external action",
	Args:      cobra.ExactArgs(1),
	ValidArgs: stepNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		step := deployment.Step(args[0])
		if failMessage == "" {
			return fmt.Errorf("--message is required")
		}
		store, rec, err := openStore()
		if err != nil {
			return err
		}
		advisor := recovery.NewAdvisor(store, rec)
		if err := advisor.RecordError(step, fmt.Errorf("%s", failMessage)); err != nil {
			return err
		}
		fmt.Printf("✗ recorded failure for %s\n", step)
		return nil
	},
}

var clearErrorCmd = &cobra.Command{
	Use:       "clear-error <step>",
	Short:     "Clear the recorded error for a step",
	Args:      cobra.ExactArgs(1),
	ValidArgs: stepNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rec, err := openStore()
		if err != nil {
			return err
		}
		advisor := recovery.NewAdvisor(store, rec)
		if err := advisor.ClearError(deployment.Step(args[0])); err != nil {
			return err
		}
		fmt.Printf("✓ cleared error for %s\n", args[0])
		return nil
	},
}

// errors shows every outstanding failure with its remediation guidance in one
// pass, so the operator sees the whole picture before choosing a fix.
var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show recorded step errors with remediation suggestions",
	Args:  cobra.NoArgs,
	RunE:  runErrors,
}

func runErrors(cmd *cobra.Command, args []string) error {
	store, rec, err := openStore()
	if err != nil {
		return err
	}
	advisor := recovery.NewAdvisor(store, rec)
	suggestions := advisor.Suggestions()

	if len(rec.Errors) == 0 {
		fmt.Println("No recorded step errors.")
		return nil
	}

	var md strings.Builder
	for _, s := range suggestions {
		fmt.Fprintf(&md, "## %s\n\n", s.DisplayName)
		fmt.Fprintf(&md, "**%s** — _%s_\n\n", s.Message, s.Timestamp)
		for _, fix := range s.Solutions {
			fmt.Fprintf(&md, "- %s\n", fix)
		}
		md.WriteString("\n")
	}
	// Errors on steps outside the remediation catalogue still get listed.
	for _, step := range deployment.Order {
		entry, ok := rec.Errors[step]
		if !ok {
			continue
		}
		if _, catalogued := recovery.Catalogued(step); catalogued {
			continue
		}
		fmt.Fprintf(&md, "## %s\n\n**%s** — _%s_\n\n", steps.Title(step), entry.Message, entry.Timestamp)
	}

	out, err := glamour.Render(md.String(), "auto")
	if err != nil {
		// Fall back to plain markdown if the terminal renderer fails.
		fmt.Print(md.String())
		return nil
	}
	fmt.Print(out)
	return nil
}

func init() {
	failCmd.Flags().StringVarP(&failMessage, "message", "m", "", "failure message reported by the external action")
	rootCmd.AddCommand(failCmd)
	rootCmd.AddCommand(clearErrorCmd)
	rootCmd.AddCommand(errorsCmd)
}
