// Package validate checks a deployment record for structural, semantic, and
// configuration problems. Configuration issues are advisory strings, never
// errors: callers surface the full list in one pass so the operator can fix
// everything at once.
package validate

import (
	"fmt"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// Configuration runs every cross-field consistency check independently (no
// short-circuit) and returns the accumulated issues. An empty slice means the
// record is consistent.
func Configuration(rec *deployment.Record) []string {
	var issues []string

	// Required identity fields.
	for _, f := range []struct{ name, value string }{
		{"projectName", rec.ProjectName},
		{"tokenName", rec.TokenName},
		{"tokenSymbol", rec.TokenSymbol},
	} {
		if f.value == "" {
			issues = append(issues, fmt.Sprintf("Missing required field: %s", f.name))
		}
	}

	// Paired external-service credentials must be present together. One
	// message per incomplete pair.
	if (rec.PinataAPIKey == "") != (rec.PinataAPISecret == "") {
		issues = append(issues, "Incomplete Pinata credentials: pinataApiKey and pinataApiSecret must be set together")
	}
	if (rec.GoogleClientID == "") != (rec.GoogleClientSecret == "") {
		issues = append(issues, "Incomplete Google OAuth credentials: googleClientId and googleClientSecret must be set together")
	}

	// Cross-schema consistency: a step flagged complete implies its resource
	// fields are present in either the legacy flat shape or the nested shape.
	if rec.Completed(deployment.StepContractsDeployed) && !rec.HasContractAddresses() {
		issues = append(issues, "Marked as deployed but missing contract addresses")
	}
	if rec.Completed(deployment.StepDataDAORegistered) && rec.DLPID == nil {
		issues = append(issues, "Marked as registered but missing DataDAO registration id")
	}

	return issues
}
