package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear step completion and acquired resources",
	Long: `Reset the provisioning workflow. Step flags, recorded errors, and every
acquired resource (addresses, ids, URLs) are cleared; project identity and
wallet credentials are preserved. This is the only way steps are un-marked.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	store, rec, err := openStore()
	if err != nil {
		return err
	}

	if !resetYes {
		rl, err := readline.New(fmt.Sprintf("Type the project name (%s) to confirm reset: ", rec.ProjectName))
		if err != nil {
			return fmt.Errorf("init prompt: %w", err)
		}
		defer rl.Close()
		line, err := rl.Readline()
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if strings.TrimSpace(line) != rec.ProjectName {
			return fmt.Errorf("confirmation did not match, nothing reset")
		}
	}

	rec.Reset()
	if err := store.Save(rec); err != nil {
		return err
	}
	fmt.Printf("✓ reset %s — identity and credentials preserved\n", rec.ProjectName)
	return nil
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
