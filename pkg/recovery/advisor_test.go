package recovery

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

func newTestAdvisor(t *testing.T) (*Advisor, *deployment.Store, *deployment.Record) {
	t.Helper()
	store := deployment.NewStore(t.TempDir())
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}
	return NewAdvisor(store, rec), store, rec
}

// TestRecordErrorSuggestsWalletFunding verifies a deployment failure maps to
// the contract-deployment catalogue entry with funding guidance.
func TestRecordErrorSuggestsWalletFunding(t *testing.T) {
	advisor, _, _ := newTestAdvisor(t)

	if err := advisor.RecordError(deployment.StepContractsDeployed, fmt.Errorf("insufficient funds for gas")); err != nil {
		t.Fatal(err)
	}

	suggestions := advisor.Suggestions()
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	s := suggestions[0]
	if s.DisplayName != "Contract Deployment" {
		t.Errorf("DisplayName = %q", s.DisplayName)
	}
	funding := false
	for _, fix := range s.Solutions {
		if strings.Contains(strings.ToLower(fix), "fund") {
			funding = true
		}
	}
	if !funding {
		t.Errorf("no wallet-funding guidance in %v", s.Solutions)
	}
}

// TestRecordErrorKeepsLatestOnly verifies overwrite semantics and immediate
// persistence.
func TestRecordErrorKeepsLatestOnly(t *testing.T) {
	advisor, store, rec := newTestAdvisor(t)

	if err := advisor.RecordError(deployment.StepDataDAORegistered, fmt.Errorf("first failure")); err != nil {
		t.Fatal(err)
	}
	if err := advisor.RecordError(deployment.StepDataDAORegistered, fmt.Errorf("second failure")); err != nil {
		t.Fatal(err)
	}

	if len(rec.Errors) != 1 {
		t.Fatalf("got %d entries, want 1", len(rec.Errors))
	}
	entry := rec.Errors[deployment.StepDataDAORegistered]
	if entry.Message != "second failure" {
		t.Errorf("Message = %q, want the most recent error", entry.Message)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC 3339: %v", entry.Timestamp, err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Errors[deployment.StepDataDAORegistered].Message != "second failure" {
		t.Error("error not persisted")
	}
}

// TestClearErrorNoopWithoutEntry verifies clearing an absent entry neither
// errors nor rewrites the file.
func TestClearErrorNoopWithoutEntry(t *testing.T) {
	advisor, store, _ := newTestAdvisor(t)

	before, err := os.Stat(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if err := advisor.ClearError(deployment.StepProofConfigured); err != nil {
		t.Fatal(err)
	}
	after, _ := os.Stat(store.Path())
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("no-op clear rewrote the document")
	}
}

// TestClearErrorRemovesAndPersists covers the non-noop path.
func TestClearErrorRemovesAndPersists(t *testing.T) {
	advisor, store, rec := newTestAdvisor(t)

	if err := advisor.RecordError(deployment.StepProofConfigured, fmt.Errorf("push rejected")); err != nil {
		t.Fatal(err)
	}
	if err := advisor.ClearError(deployment.StepProofConfigured); err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Errors[deployment.StepProofConfigured]; ok {
		t.Error("entry still present")
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded.Errors[deployment.StepProofConfigured]; ok {
		t.Error("cleared entry persisted")
	}
}

// TestSuggestionsOmitUncataloguedSteps verifies steps outside the catalogue
// are silently dropped while catalogued ones survive, in canonical order.
func TestSuggestionsOmitUncataloguedSteps(t *testing.T) {
	advisor, _, _ := newTestAdvisor(t)

	if err := advisor.RecordError(deployment.StepUIConfigured, fmt.Errorf("build failed")); err != nil {
		t.Fatal(err)
	}
	if err := advisor.RecordError(deployment.StepRefinerPublished, fmt.Errorf("pin failed")); err != nil {
		t.Fatal(err)
	}
	if err := advisor.RecordError(deployment.StepContractsDeployed, fmt.Errorf("out of gas")); err != nil {
		t.Fatal(err)
	}

	suggestions := advisor.Suggestions()
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2 (uiConfigured has no catalogue entry)", len(suggestions))
	}
	if suggestions[0].Step != deployment.StepContractsDeployed {
		t.Errorf("suggestions[0] = %s, want canonical order", suggestions[0].Step)
	}
	if suggestions[1].Step != deployment.StepRefinerPublished {
		t.Errorf("suggestions[1] = %s", suggestions[1].Step)
	}
}

// TestErrorTraceCapturesWrapChain verifies wrapped causes land in the trace.
func TestErrorTraceCapturesWrapChain(t *testing.T) {
	advisor, _, rec := newTestAdvisor(t)

	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := fmt.Errorf("deploy token contract: %w", cause)
	if err := advisor.RecordError(deployment.StepContractsDeployed, wrapped); err != nil {
		t.Fatal(err)
	}

	entry := rec.Errors[deployment.StepContractsDeployed]
	if !strings.Contains(entry.Trace, "connection refused") {
		t.Errorf("Trace = %q, want the unwrapped cause", entry.Trace)
	}
}
