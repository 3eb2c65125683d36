package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/recovery"
	"github.com/daoforge-io/daoforge/pkg/steps"
	"github.com/daoforge-io/daoforge/pkg/validate"
)

// HandleStatus implements the daoforge/status MCP tool.
func HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, _, res := loadRecord(req)
	if res != nil {
		return res, nil
	}

	type stepStatus struct {
		Step      string `json:"step"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
		Error     string `json:"error,omitempty"`
	}
	response := struct {
		Project string       `json:"project"`
		Steps   []stepStatus `json:"steps"`
	}{Project: rec.ProjectName}

	for _, s := range deployment.Order {
		st := stepStatus{
			Step:      string(s),
			Title:     steps.Title(s),
			Completed: rec.Completed(s),
		}
		if entry, ok := rec.Errors[s]; ok {
			st.Error = entry.Message
		}
		response.Steps = append(response.Steps, st)
	}

	data, _ := json.MarshalIndent(response, "", "  ")
	return textResult(string(data)), nil
}

// HandleNext implements the daoforge/next MCP tool.
func HandleNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, store, res := loadRecord(req)
	if res != nil {
		return res, nil
	}

	machine := steps.NewMachine(store, rec)
	next, ok := machine.NextIncomplete()
	if !ok {
		return textResult("all steps complete"), nil
	}

	response := map[string]any{
		"step":  string(next),
		"title": steps.Title(next),
	}
	if err := machine.CheckPreconditions(next); err != nil {
		response["blocked"] = err.Error()
	}
	data, _ := json.MarshalIndent(response, "", "  ")
	return textResult(string(data)), nil
}

// HandleValidate implements the daoforge/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := projectDir(req)

	rec, errs := validate.Project(dir)
	if len(errs) == 0 {
		return textResult(fmt.Sprintf("✓ %s deployment record is valid", rec.ProjectName)), nil
	}

	hasErrors := false
	var findings []map[string]string
	for _, e := range errs {
		if e.Severity == "error" {
			hasErrors = true
		}
		findings = append(findings, map[string]string{
			"phase":    e.Phase,
			"severity": e.Severity,
			"message":  e.Message,
		})
	}
	data, _ := json.MarshalIndent(findings, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: hasErrors,
	}, nil
}

// HandleSuggest implements the daoforge/suggest MCP tool.
func HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, store, res := loadRecord(req)
	if res != nil {
		return res, nil
	}

	advisor := recovery.NewAdvisor(store, rec)
	suggestions := advisor.Suggestions()
	if len(suggestions) == 0 {
		return textResult("no recorded step errors"), nil
	}

	data, _ := json.MarshalIndent(suggestions, "", "  ")
	return textResult(string(data)), nil
}

func projectDir(req mcp.CallToolRequest) string {
	args := req.GetArguments()
	if dir, _ := args["dir"].(string); dir != "" {
		return dir
	}
	return "."
}

// loadRecord loads the deployment record for the request's project directory.
// On failure the third return is a ready-made error result.
func loadRecord(req mcp.CallToolRequest) (*deployment.Record, *deployment.Store, *mcp.CallToolResult) {
	store := deployment.NewStore(projectDir(req))
	rec, err := store.Load()
	if err != nil {
		return nil, nil, errorResult(err.Error())
	}
	return rec, store, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
