package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/template"
)

// Generate renders the project's template directory into its output
// directory, binding placeholders from the deployment record plus the
// network settings. Unresolved placeholders are diagnostics, not failures:
// early in the workflow most resource bindings don't exist yet, and the
// generator is rerun after each step lands more of them.
func Generate(dir string, cfg *Config, rec *deployment.Record) ([]template.FileDiagnostic, error) {
	srcDir := filepath.Join(dir, cfg.Templates.Dir)
	if _, err := os.Stat(srcDir); err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}

	bindings := rec.Bindings()
	bindings["rpcUrl"] = cfg.Network.RPCURL
	bindings["chainId"] = cfg.Network.ChainID

	dstDir := filepath.Join(dir, cfg.Templates.Out)
	diags, err := template.RenderDir(srcDir, dstDir, bindings)
	if err != nil {
		return nil, fmt.Errorf("render templates: %w", err)
	}
	return diags, nil
}
