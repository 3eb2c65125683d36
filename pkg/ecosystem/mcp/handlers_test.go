package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

func seedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := deployment.NewStore(dir)
	rec := deployment.NewRecord("my-dao", "MyToken", "MYT")
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}
	return dir
}

func request(dir string) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"dir": dir}
	return req
}

func contentText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestHandleStatus verifies the status tool reports every step.
func TestHandleStatus(t *testing.T) {
	res, err := HandleStatus(context.Background(), request(seedProject(t)))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", contentText(t, res))
	}
	text := contentText(t, res)
	for _, s := range deployment.Order {
		if !strings.Contains(text, string(s)) {
			t.Errorf("status missing step %s", s)
		}
	}
}

// TestHandleStatusMissingProject verifies a clear error for an uninitialized
// directory.
func TestHandleStatusMissingProject(t *testing.T) {
	res, err := HandleStatus(context.Background(), request(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error for missing deployment record")
	}
}

// TestHandleNext verifies the next tool resolves the first incomplete step.
func TestHandleNext(t *testing.T) {
	res, err := HandleNext(context.Background(), request(seedProject(t)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contentText(t, res), string(deployment.StepContractsDeployed)) {
		t.Errorf("next = %s, want contractsDeployed", contentText(t, res))
	}
}

// TestHandleValidate verifies the validate tool distinguishes clean records
// from ones with configuration warnings.
func TestHandleValidate(t *testing.T) {
	dir := seedProject(t)

	res, err := HandleValidate(context.Background(), request(dir))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("clean record flagged: %s", contentText(t, res))
	}

	// Introduce an inconsistency: deployed without addresses. Warnings are
	// reported but are not hard errors.
	store := deployment.NewStore(dir)
	rec, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	rec.State[deployment.StepContractsDeployed] = true
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}

	res, err = HandleValidate(context.Background(), request(dir))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Error("configuration warnings should not be a hard error")
	}
	if !strings.Contains(contentText(t, res), "missing contract addresses") {
		t.Errorf("warning not surfaced: %s", contentText(t, res))
	}
}

// TestHandleSuggest verifies recorded errors map to catalogue guidance.
func TestHandleSuggest(t *testing.T) {
	dir := seedProject(t)
	store := deployment.NewStore(dir)
	rec, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	rec.Errors = map[deployment.Step]deployment.ErrorEntry{
		deployment.StepContractsDeployed: {Message: "out of gas", Timestamp: "2026-08-26T10:00:00Z"},
	}
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}

	res, err := HandleSuggest(context.Background(), request(dir))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contentText(t, res), "Contract Deployment") {
		t.Errorf("suggestion missing: %s", contentText(t, res))
	}
}
