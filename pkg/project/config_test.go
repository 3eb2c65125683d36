package project

import (
	"strings"
	"testing"
)

const validConfig = `
project:
  name: my-dao
  tokenName: MyToken
  tokenSymbol: MYT
network:
  rpcUrl: https://rpc.moksha.vana.org
  chainId: 14800
`

// TestLoadConfig verifies parsing and defaulting.
func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(validConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project.Name != "my-dao" || cfg.Network.ChainID != 14800 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Templates.Dir != "templates" || cfg.Templates.Out != "." {
		t.Errorf("defaults not applied: %+v", cfg.Templates)
	}
}

// TestLoadConfigRejectsUnknownFields verifies strict decoding.
func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	bad := validConfig + "\nextra: true\n"
	if _, err := LoadConfig(strings.NewReader(bad)); err == nil {
		t.Error("unknown field accepted")
	}
}

// TestLoadConfigRequiredFields covers the domain checks.
func TestLoadConfigRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing name", "project:\n  tokenName: T\nnetwork:\n  rpcUrl: x\n  chainId: 1\n"},
		{"missing rpcUrl", "project:\n  name: p\nnetwork:\n  chainId: 1\n"},
		{"bad chainId", "project:\n  name: p\nnetwork:\n  rpcUrl: x\n  chainId: -4\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(strings.NewReader(tc.yaml)); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}
