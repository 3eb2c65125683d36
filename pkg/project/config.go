// Package project defines the daoforge.yaml project configuration and the
// scaffold generator that materializes template files from deployment state.
package project

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the fixed name of the project configuration inside a project
// directory.
const ConfigFile = "daoforge.yaml"

// Config is the top-level project configuration document.
type Config struct {
	Project   ProjectMeta `yaml:"project"`
	Network   Network     `yaml:"network"`
	Templates Templates   `yaml:"templates,omitempty"`
}

// ProjectMeta names the project and its token.
type ProjectMeta struct {
	Name        string `yaml:"name"`
	TokenName   string `yaml:"tokenName"`
	TokenSymbol string `yaml:"tokenSymbol"`
}

// Network selects the chain the contracts deploy to.
type Network struct {
	RPCURL  string `yaml:"rpcUrl"`
	ChainID int    `yaml:"chainId"`
}

// Templates locates the template directory and the scaffold output directory,
// both relative to the project directory.
type Templates struct {
	Dir string `yaml:"dir,omitempty"`
	Out string `yaml:"out,omitempty"`
}

// LoadConfigFile reads and parses a daoforge.yaml with strict unknown-field
// rejection.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// LoadConfig parses a project config from an io.Reader with strict
// unknown-field rejection (yaml.v3 KnownFields).
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode project config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// WriteFile serializes the config to path.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project config: %w", err)
	}
	return nil
}

func (c *Config) check() error {
	if c.Project.Name == "" {
		return fmt.Errorf("project config: project.name is required")
	}
	if c.Network.RPCURL == "" {
		return fmt.Errorf("project config: network.rpcUrl is required")
	}
	if c.Network.ChainID <= 0 {
		return fmt.Errorf("project config: network.chainId must be positive")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Templates.Dir == "" {
		c.Templates.Dir = "templates"
	}
	if c.Templates.Out == "" {
		c.Templates.Out = "."
	}
}
