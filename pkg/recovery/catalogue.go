package recovery

import "github.com/daoforge-io/daoforge/pkg/deployment"

// Remedy is a static catalogue entry mapping a failed step to targeted
// remediation guidance.
type Remedy struct {
	DisplayName string
	Solutions   []string
}

// catalogue maps step keys to remediation guidance. Steps without an entry
// (currently uiConfigured) are silently omitted from suggestions.
var catalogue = map[deployment.Step]Remedy{
	deployment.StepContractsDeployed: {
		DisplayName: "Contract Deployment",
		Solutions: []string{
			"Fund the deployer wallet with testnet VANA from the faucet, then retry",
			"Confirm the RPC endpoint in daoforge.yaml is reachable and not rate-limited",
			"If a previous attempt left a partial deployment, reset and redeploy",
		},
	},
	deployment.StepDataDAORegistered: {
		DisplayName: "DataDAO Registration",
		Solutions: []string{
			"Registration requires the 1 VANA fee on top of gas — top up the wallet",
			"Choose a different DataDAO name if registration reverted with a name collision",
			"Verify the proxy address recorded at deployment is correct",
		},
	},
	deployment.StepProofConfigured: {
		DisplayName: "Proof of Contribution Setup",
		Solutions: []string{
			"Create the proof repository from the template and push an initial commit",
			"Check that the git remote is reachable and you have push access",
		},
	},
	deployment.StepProofPublished: {
		DisplayName: "Proof of Contribution Publication",
		Solutions: []string{
			"Make sure the proof repository's release build completed before publishing",
			"Verify the artifact URL is publicly downloadable",
		},
	},
	deployment.StepRefinerConfigured: {
		DisplayName: "Data Refiner Setup",
		Solutions: []string{
			"Create the refiner repository from the template and push an initial commit",
			"Check that the git remote is reachable and you have push access",
		},
	},
	deployment.StepRefinerPublished: {
		DisplayName: "Data Refiner Publication",
		Solutions: []string{
			"Confirm the schema was pinned to IPFS — check the Pinata credentials",
			"Verify the refiner image build succeeded before registering it",
		},
	},
}

// Catalogued returns the remedy for a step, if one exists.
func Catalogued(step deployment.Step) (Remedy, bool) {
	r, ok := catalogue[step]
	return r, ok
}
