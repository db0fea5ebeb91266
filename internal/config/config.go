// Package config holds the bootstrap tool's own configuration: where
// the env file, dependency manifest, and external setup programs live.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the optional config file read from the working directory.
const DefaultPath = "trustlens.yaml"

// SetupSpec is one external initializer command.
type SetupSpec struct {
	Label   string   `yaml:"label"`
	Command []string `yaml:"command"`
}

// Config parameterizes the quickstart driver and doctor checks.
type Config struct {
	EnvFile     string      `yaml:"env_file"`
	RequiredKey string      `yaml:"required_key"`
	Python      string      `yaml:"python"`
	Manifest    string      `yaml:"manifest"`
	Root        string      `yaml:"root"`
	Setup       []SetupSpec `yaml:"setup"`
}

// Default returns the built-in configuration matching the stock
// TrustLensAI layout.
func Default() *Config {
	return &Config{
		EnvFile:     ".env",
		RequiredKey: "GOOGLE_API_KEY",
		Python:      "python3",
		Manifest:    "backend/requirements.txt",
		Root:        ".",
		Setup: []SetupSpec{
			{Label: "governance database", Command: []string{"python3", "setup_database.py"}},
			{Label: "knowledge store", Command: []string{"python3", "setup_chromadb.py"}},
		},
	}
}

// Load reads configuration from a YAML file. Empty path falls back to
// DefaultPath. A missing file returns defaults; invalid YAML returns an
// error. Fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.EnvFile == "" {
		return fmt.Errorf("env_file must not be empty")
	}
	if c.RequiredKey == "" {
		return fmt.Errorf("required_key must not be empty")
	}
	if c.Python == "" {
		return fmt.Errorf("python must not be empty")
	}
	for i, s := range c.Setup {
		if len(s.Command) == 0 {
			return fmt.Errorf("setup[%d] (%s): command must not be empty", i, s.Label)
		}
	}
	return nil
}
