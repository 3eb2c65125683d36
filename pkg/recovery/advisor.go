// Package recovery records per-step failures on the deployment record and
// maps them to static remediation guidance. Step errors are captured, never
// rethrown: the operator diagnoses the full set, then chooses a remedy.
package recovery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// Advisor records and clears step errors, persisting each mutation
// immediately through the store.
type Advisor struct {
	store *deployment.Store
	rec   *deployment.Record
}

// NewAdvisor binds an advisor to a store and record.
func NewAdvisor(store *deployment.Store, rec *deployment.Record) *Advisor {
	return &Advisor{store: store, rec: rec}
}

// RecordError stores the failure for a step, overwriting any prior entry —
// only the most recent error per step is retained — and persists immediately.
func (a *Advisor) RecordError(step deployment.Step, cause error) error {
	if !deployment.KnownStep(step) {
		return fmt.Errorf("unknown step %q", step)
	}
	if a.rec.Errors == nil {
		a.rec.Errors = make(map[deployment.Step]deployment.ErrorEntry)
	}
	a.rec.Errors[step] = deployment.ErrorEntry{
		Message:   cause.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Trace:     errorTrace(cause),
	}
	if err := a.store.Save(a.rec); err != nil {
		return fmt.Errorf("persist error for %q: %w", step, err)
	}
	return nil
}

// ClearError removes the entry for a step if present. When no entry exists
// this is a no-op and nothing is persisted.
func (a *Advisor) ClearError(step deployment.Step) error {
	if _, ok := a.rec.Errors[step]; !ok {
		return nil
	}
	delete(a.rec.Errors, step)
	if err := a.store.Save(a.rec); err != nil {
		return fmt.Errorf("persist cleared error for %q: %w", step, err)
	}
	return nil
}

// Suggestion pairs a recorded step error with its catalogue remedy.
type Suggestion struct {
	Step        deployment.Step
	DisplayName string
	Message     string
	Timestamp   string
	Solutions   []string
}

// Suggestions maps every outstanding step error to its catalogue entry, in
// canonical step order. Steps whose errors have no catalogue entry are
// silently omitted. The full list is returned in one pass so all failures
// can be shown together before any remediation choice is offered.
func (a *Advisor) Suggestions() []Suggestion {
	var out []Suggestion
	for _, step := range deployment.Order {
		entry, ok := a.rec.Errors[step]
		if !ok {
			continue
		}
		remedy, ok := Catalogued(step)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			Step:        step,
			DisplayName: remedy.DisplayName,
			Message:     entry.Message,
			Timestamp:   entry.Timestamp,
			Solutions:   remedy.Solutions,
		})
	}
	return out
}

// errorTrace renders the wrap chain of an error, one frame per line, giving
// the catalogue enough context for a targeted suggestion.
func errorTrace(err error) string {
	var frames []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		frames = append(frames, e.Error())
	}
	if len(frames) <= 1 {
		return ""
	}
	return strings.Join(frames, "\n")
}
