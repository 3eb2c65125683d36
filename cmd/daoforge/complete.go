package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/recovery"
	"github.com/daoforge-io/daoforge/pkg/steps"
)

var (
	completeTokenAddress   string
	completeProxyAddress   string
	completeVestingAddress string
	completeDLPID          int64
	completeRefinerID      int64
	completeRepo           string
	completeProofURL       string
	completeSchemaURL      string
	completeClientID       string
	completeClientSecret   string
)

var completeCmd = &cobra.Command{
	Use:   "complete <step>",
	Short: "Report a step's external work as done, recording its resources",
	Long: `Report completion of a provisioning step. Each step accepts exactly the
resource flags it produces; required values not passed as flags are prompted
for interactively. The flag and its resources are persisted in one save.

On success any recorded error for the step is cleared.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: stepNames(),
	RunE:      runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	step := deployment.Step(args[0])
	if !deployment.KnownStep(step) {
		return fmt.Errorf("unknown step %q (one of: %s)", step, strings.Join(stepNames(), ", "))
	}

	store, rec, err := openStore()
	if err != nil {
		return err
	}
	machine := steps.NewMachine(store, rec)

	if err := machine.CheckPreconditions(step); err != nil {
		return err
	}

	update, err := buildUpdate(cmd, step)
	if err != nil {
		return err
	}
	if err := machine.MarkCompleted(step, update); err != nil {
		return err
	}

	// A completed step no longer has an outstanding failure.
	advisor := recovery.NewAdvisor(store, rec)
	if err := advisor.ClearError(step); err != nil {
		return err
	}

	fmt.Printf("✓ %s complete\n", step)
	if next, ok := machine.NextIncomplete(); ok {
		fmt.Printf("Next: daoforge complete %s\n", next)
	} else {
		fmt.Println("All steps complete.")
	}
	return nil
}

// buildUpdate assembles the typed resource update for a step, prompting for
// required values the operator didn't pass as flags.
func buildUpdate(cmd *cobra.Command, step deployment.Step) (steps.ResourceUpdate, error) {
	switch step {
	case deployment.StepContractsDeployed:
		token, err := required("token contract address", completeTokenAddress)
		if err != nil {
			return nil, err
		}
		proxy, err := required("DLP proxy address", completeProxyAddress)
		if err != nil {
			return nil, err
		}
		return steps.ContractsDeployed{
			TokenAddress:   token,
			ProxyAddress:   proxy,
			VestingAddress: completeVestingAddress,
		}, nil

	case deployment.StepDataDAORegistered:
		if !cmd.Flags().Changed("dlp-id") {
			raw, err := required("DLP registration id", "")
			if err != nil {
				return nil, err
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid DLP id %q: %w", raw, err)
			}
			return steps.DataDAORegistered{DLPID: id}, nil
		}
		if completeDLPID < 0 {
			return nil, fmt.Errorf("--dlp-id must not be negative")
		}
		return steps.DataDAORegistered{DLPID: uint64(completeDLPID)}, nil

	case deployment.StepProofConfigured:
		repo, err := required("proof repository URL", completeRepo)
		if err != nil {
			return nil, err
		}
		return steps.ProofConfigured{RepoURL: repo}, nil

	case deployment.StepProofPublished:
		url, err := required("published proof artifact URL", completeProofURL)
		if err != nil {
			return nil, err
		}
		return steps.ProofPublished{ProofURL: url}, nil

	case deployment.StepRefinerConfigured:
		repo, err := required("refiner repository URL", completeRepo)
		if err != nil {
			return nil, err
		}
		return steps.RefinerConfigured{RepoURL: repo, SchemaURL: completeSchemaURL}, nil

	case deployment.StepRefinerPublished:
		if !cmd.Flags().Changed("refiner-id") {
			raw, err := required("refiner id", "")
			if err != nil {
				return nil, err
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid refiner id %q: %w", raw, err)
			}
			return steps.RefinerPublished{RefinerID: id}, nil
		}
		if completeRefinerID < 0 {
			return nil, fmt.Errorf("--refiner-id must not be negative")
		}
		return steps.RefinerPublished{RefinerID: uint64(completeRefinerID)}, nil

	case deployment.StepUIConfigured:
		repo, err := required("UI repository URL", completeRepo)
		if err != nil {
			return nil, err
		}
		return steps.UIConfigured{
			RepoURL:            repo,
			GoogleClientID:     completeClientID,
			GoogleClientSecret: completeClientSecret,
		}, nil
	}
	return nil, fmt.Errorf("unknown step %q", step)
}

// required returns the flag value, or prompts for one when it is empty.
// Prompting lives here, in the outer layer — the state machine itself never
// blocks on input.
func required(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	rl, err := readline.New(label + ": ")
	if err != nil {
		return "", fmt.Errorf("init prompt: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}

func stepNames() []string {
	names := make([]string, len(deployment.Order))
	for i, s := range deployment.Order {
		names[i] = string(s)
	}
	return names
}

func init() {
	completeCmd.Flags().StringVar(&completeTokenAddress, "token-address", "", "deployed token contract address")
	completeCmd.Flags().StringVar(&completeProxyAddress, "proxy-address", "", "deployed DLP proxy address")
	completeCmd.Flags().StringVar(&completeVestingAddress, "vesting-address", "", "deployed vesting contract address")
	completeCmd.Flags().Int64Var(&completeDLPID, "dlp-id", -1, "DLP registration id")
	completeCmd.Flags().Int64Var(&completeRefinerID, "refiner-id", -1, "refiner id")
	completeCmd.Flags().StringVar(&completeRepo, "repo", "", "repository URL produced by the step")
	completeCmd.Flags().StringVar(&completeProofURL, "proof-url", "", "published proof artifact URL")
	completeCmd.Flags().StringVar(&completeSchemaURL, "schema-url", "", "pinned schema URL")
	completeCmd.Flags().StringVar(&completeClientID, "google-client-id", "", "Google OAuth client id")
	completeCmd.Flags().StringVar(&completeClientSecret, "google-client-secret", "", "Google OAuth client secret")
	rootCmd.AddCommand(completeCmd)
}
