// Package steps implements the ordered provisioning workflow: step
// definitions with dependency guards, completion tracking, next-step
// resolution, and precondition checks over a deployment record.
package steps

import "github.com/daoforge-io/daoforge/pkg/deployment"

// Definition describes one workflow step: its display title, the steps it
// depends on, and a guard expression over completion flags that must hold
// before the step may run. Guards are evaluated with expr-lang.
type Definition struct {
	Key      deployment.Step
	Title    string
	Requires []deployment.Step
	Guard    string
}

// Definitions lists every step in canonical order. Contract deployment comes
// first, registration second; the proof and refiner tracks are siblings, both
// gated on registration and independent of each other; the UI step closes the
// workflow once both tracks have published.
var Definitions = []Definition{
	{
		Key:   deployment.StepContractsDeployed,
		Title: "Deploy contracts",
	},
	{
		Key:      deployment.StepDataDAORegistered,
		Title:    "Register DataDAO",
		Requires: []deployment.Step{deployment.StepContractsDeployed},
		Guard:    "contractsDeployed",
	},
	{
		Key:      deployment.StepProofConfigured,
		Title:    "Configure proof of contribution",
		Requires: []deployment.Step{deployment.StepDataDAORegistered},
		Guard:    "dataDAORegistered",
	},
	{
		Key:      deployment.StepProofPublished,
		Title:    "Publish proof of contribution",
		Requires: []deployment.Step{deployment.StepProofConfigured},
		Guard:    "dataDAORegistered && proofConfigured",
	},
	{
		Key:      deployment.StepRefinerConfigured,
		Title:    "Configure data refiner",
		Requires: []deployment.Step{deployment.StepDataDAORegistered},
		Guard:    "dataDAORegistered",
	},
	{
		Key:      deployment.StepRefinerPublished,
		Title:    "Publish data refiner",
		Requires: []deployment.Step{deployment.StepRefinerConfigured},
		Guard:    "dataDAORegistered && refinerConfigured",
	},
	{
		Key:      deployment.StepUIConfigured,
		Title:    "Configure UI",
		Requires: []deployment.Step{deployment.StepProofPublished, deployment.StepRefinerPublished},
		Guard:    "proofPublished && refinerPublished",
	},
}

// Lookup returns the definition for a step key.
func Lookup(step deployment.Step) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == step {
			return d, true
		}
	}
	return Definition{}, false
}

// Title returns the display title for a step, falling back to the raw key.
func Title(step deployment.Step) string {
	if d, ok := Lookup(step); ok {
		return d.Title
	}
	return string(step)
}
