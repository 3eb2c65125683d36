package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// ValidationError is a single finding with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, configuration
	Path     string `json:"path"`  // JSON-path-like location within the document
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// Project performs the full validation pipeline on a project directory.
// Phase 1: Structural (record present and parseable)
// Phase 2: Semantic (JSON Schema validation of the raw document)
// Phase 3: Configuration (cross-field consistency, reported as warnings —
// configuration issues are advisory, never fatal)
func Project(dir string) (*deployment.Record, []*ValidationError) {
	var all []*ValidationError

	store := deployment.NewStore(dir)
	rec, err := store.Load()
	if err != nil {
		all = append(all, &ValidationError{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		})
		return nil, all
	}

	all = append(all, validateSemantic(store.Path())...)

	for _, issue := range Configuration(rec) {
		all = append(all, &ValidationError{
			Phase:    "configuration",
			Message:  issue,
			Severity: "warning",
		})
	}

	if len(all) > 0 {
		return rec, all
	}
	return rec, nil
}

// validateSemantic validates the raw on-disk document against the generated
// record schema.
func validateSemantic(path string) []*ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("read document: %v", err),
			Severity: "error",
		}}
	}

	schemaJSON, err := GenerateRecordJSONSchema()
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("generate schema: %v", err),
			Severity: "error",
		}}
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("unmarshal schema: %v", err),
			Severity: "error",
		}}
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("deployment-v1.json", schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("add schema resource: %v", err),
			Severity: "error",
		}}
	}
	sch, err := c.Compile("deployment-v1.json")
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("compile schema: %v", err),
			Severity: "error",
		}}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("unmarshal document: %v", err),
			Severity: "error",
		}}
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     strings.Join(cause.InstanceLocation, "/"),
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
		} else {
			errs = append(errs, &ValidationError{
				Phase:    "semantic",
				Message:  err.Error(),
				Severity: "error",
			})
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
