package validate

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/daoforge-io/daoforge/pkg/deployment"
)

// GenerateRecordJSONSchema produces a JSON Schema Draft 2020-12 document from
// the Go deployment.Record struct using invopop/jsonschema.
func GenerateRecordJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&deployment.Record{})
	s.ID = "https://github.com/daoforge-io/daoforge/schemas/deployment-v1.json"
	s.Title = "DataDAO Deployment Record v1"
	s.Description = "Schema for daoforge deployment.json documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
