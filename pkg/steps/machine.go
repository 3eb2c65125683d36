package steps

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// MissingFieldsError enumerates every absent field found by
// ValidateRequiredFields in a single error, so the operator sees the full
// precondition failure in one pass.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Machine tracks step completion against one deployment record, persisting
// every transition through the store. Transitions are atomic with respect to
// the in-memory record: the flag and its resource update land in one save.
type Machine struct {
	store *deployment.Store
	rec   *deployment.Record
}

// NewMachine binds a machine to a store and the record it manages.
func NewMachine(store *deployment.Store, rec *deployment.Record) *Machine {
	return &Machine{store: store, rec: rec}
}

// Record returns the record the machine mutates.
func (m *Machine) Record() *deployment.Record { return m.rec }

// IsCompleted reports whether the step's flag is set.
func (m *Machine) IsCompleted(step deployment.Step) bool {
	return m.rec.Completed(step)
}

// NextIncomplete returns the first step in canonical order whose flag is
// false. ok is false when every step is complete.
func (m *Machine) NextIncomplete() (step deployment.Step, ok bool) {
	for _, s := range deployment.Order {
		if !m.rec.Completed(s) {
			return s, true
		}
	}
	return "", false
}

// CheckPreconditions evaluates the step's guard expression against the
// current completion flags and returns an error naming the unmet
// dependencies. Completed steps are never re-gated.
func (m *Machine) CheckPreconditions(step deployment.Step) error {
	def, ok := Lookup(step)
	if !ok {
		return fmt.Errorf("unknown step %q", step)
	}
	if def.Guard == "" {
		return nil
	}

	env := make(map[string]any, len(deployment.Order))
	for _, s := range deployment.Order {
		env[string(s)] = m.rec.Completed(s)
	}
	program, err := expr.Compile(def.Guard, expr.Env(env), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile guard %q: %w", def.Guard, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return fmt.Errorf("eval guard %q: %w", def.Guard, err)
	}
	if out.(bool) {
		return nil
	}

	var unmet []string
	for _, dep := range def.Requires {
		if !m.rec.Completed(dep) {
			unmet = append(unmet, string(dep))
		}
	}
	return fmt.Errorf("step %q requires %s to be completed first", step, strings.Join(unmet, ", "))
}

// MarkCompleted sets the step's flag, applies the step's typed resource
// update, and persists both in one save. The update's tag must match the
// step being reported. Calling MarkCompleted twice with identical arguments
// leaves the persisted state unchanged after the second call.
//
// Completed steps are never un-marked here; only Record.Reset clears flags.
func (m *Machine) MarkCompleted(step deployment.Step, update ResourceUpdate) error {
	if !deployment.KnownStep(step) {
		return fmt.Errorf("unknown step %q", step)
	}
	if update != nil {
		if update.Step() != step {
			return fmt.Errorf("resource update for %q reported against step %q", update.Step(), step)
		}
		if err := update.apply(m.rec); err != nil {
			return err
		}
	}
	if m.rec.State == nil {
		m.rec.State = make(deployment.StepState, len(deployment.Order))
	}
	m.rec.State[step] = true
	if err := m.store.Save(m.rec); err != nil {
		return fmt.Errorf("persist completion of %q: %w", step, err)
	}
	return nil
}

// ValidateRequiredFields checks that every named field is present on the
// record, enumerating all absent names in one MissingFieldsError. Presence is
// an explicit check: empty strings and unset pointer ids are absent, but a
// zero-valued id is present.
func (m *Machine) ValidateRequiredFields(names ...string) error {
	bindings := m.rec.Bindings()
	var missing []string
	for _, name := range names {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
