package validate

import (
	"strings"
	"testing"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

func hasIssue(issues []string, substr string) bool {
	for _, i := range issues {
		if strings.Contains(i, substr) {
			return true
		}
	}
	return false
}

// TestDeployedWithoutAddresses verifies a record flagged deployed but holding
// no addresses in either shape is reported.
func TestDeployedWithoutAddresses(t *testing.T) {
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")
	rec.State[deployment.StepContractsDeployed] = true

	issues := Configuration(rec)
	if !hasIssue(issues, "Marked as deployed but missing contract addresses") {
		t.Errorf("missing-addresses issue not reported: %v", issues)
	}
}

// TestDeployedAddressesEitherShape verifies legacy-only and nested-only
// records both satisfy the deployed check (logical OR across schema
// versions, never AND).
func TestDeployedAddressesEitherShape(t *testing.T) {
	legacy := deployment.NewRecord("my-dao", "MyToken", "MYT")
	legacy.State[deployment.StepContractsDeployed] = true
	legacy.DLPAddress = "0xAAA"
	if hasIssue(Configuration(legacy), "missing contract addresses") {
		t.Error("legacy-only record incorrectly reported")
	}

	nested := deployment.NewRecord("my-dao", "MyToken", "MYT")
	nested.State[deployment.StepContractsDeployed] = true
	nested.Contracts = &deployment.ContractAddresses{TokenAddress: "0xAAA", ProxyAddress: "0xBBB"}
	if hasIssue(Configuration(nested), "missing contract addresses") {
		t.Error("nested-only record incorrectly reported")
	}
}

// TestRegisteredWithoutID verifies the registration id consistency check,
// and that a zero id satisfies it.
func TestRegisteredWithoutID(t *testing.T) {
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")
	rec.State[deployment.StepDataDAORegistered] = true
	if !hasIssue(Configuration(rec), "missing DataDAO registration id") {
		t.Error("missing registration id not reported")
	}

	zero := uint64(0)
	rec.DLPID = &zero
	if hasIssue(Configuration(rec), "missing DataDAO registration id") {
		t.Error("zero id incorrectly treated as missing")
	}
}

// TestPairedCredentials verifies one message per incomplete pair and none
// for complete or absent pairs.
func TestPairedCredentials(t *testing.T) {
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")

	// Both absent: no issue.
	if hasIssue(Configuration(rec), "Pinata") {
		t.Error("absent pair incorrectly reported")
	}

	rec.PinataAPIKey = "key"
	if !hasIssue(Configuration(rec), "Pinata") {
		t.Error("half-set Pinata pair not reported")
	}

	rec.PinataAPISecret = "secret"
	if hasIssue(Configuration(rec), "Pinata") {
		t.Error("complete pair incorrectly reported")
	}
}

// TestChecksRunIndependently verifies no short-circuit: one pass surfaces
// every issue at once.
func TestChecksRunIndependently(t *testing.T) {
	rec := &deployment.Record{
		State: deployment.StepState{
			deployment.StepContractsDeployed: true,
			deployment.StepDataDAORegistered: true,
		},
		GoogleClientID: "id-only",
	}

	issues := Configuration(rec)
	for _, want := range []string{
		"projectName",
		"tokenName",
		"tokenSymbol",
		"Google OAuth",
		"missing contract addresses",
		"missing DataDAO registration id",
	} {
		if !hasIssue(issues, want) {
			t.Errorf("issue containing %q missing from %v", want, issues)
		}
	}
	if len(issues) != 6 {
		t.Errorf("got %d issues, want 6: %v", len(issues), issues)
	}
}

// TestCleanRecordHasNoIssues verifies the empty-list contract.
func TestCleanRecordHasNoIssues(t *testing.T) {
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")
	if issues := Configuration(rec); len(issues) != 0 {
		t.Errorf("fresh record should be consistent, got %v", issues)
	}
}
