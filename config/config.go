package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PathsConfig holds the node and repository locations.
type PathsConfig struct {
	// DataDir is the node's data path; the index catalog lives below it.
	DataDir string `yaml:"data_dir"`
	// RepoDir overrides the repository root. When empty the root is derived
	// as <parent of data_dir>/repo, matching the node's own convention.
	RepoDir string `yaml:"repo_dir"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // e.g., "debug", "info", "warn", "error"
	Output string `yaml:"output"` // e.g., "stdout", "stderr", "file", "none"
	File   string `yaml:"file"`   // Path to the log file, used if output is "file"
}

// ReportConfig holds output rendering configurations.
type ReportConfig struct {
	// Format selects the renderer: "text", "json", or "auto" (text when
	// stdout is a terminal, json otherwise).
	Format string `yaml:"format"`
}

// Config is the top-level configuration struct.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// RepoRoot returns the effective repository root: the configured override if
// set, otherwise <parent of data_dir>/repo.
func (c *Config) RepoRoot() string {
	if c.Paths.RepoDir != "" {
		return c.Paths.RepoDir
	}
	return filepath.Join(filepath.Dir(filepath.Clean(c.Paths.DataDir)), "repo")
}

// Load reads configuration from an io.Reader.
// This is the core logic, separated for testability.
func Load(r io.Reader) (*Config, error) {
	// Set default values
	cfg := &Config{
		Paths: PathsConfig{
			DataDir: "./data",
			RepoDir: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			File:   "translogctl.log",
		},
		Report: ReportConfig{
			Format: "auto",
		},
	}

	// If the reader is nil, it's like an empty file, return defaults.
	if r == nil {
		return cfg, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}

	// If data is empty, return defaults.
	if len(data) == 0 {
		return cfg, nil
	}

	// Unmarshal YAML into the config struct, overwriting defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads configuration from a YAML file by path.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// If file doesn't exist, return default config by calling Load with a nil reader.
			return Load(nil)
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}
