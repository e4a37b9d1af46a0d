// Package config loads the harness's YAML configuration files: the MAS
// LLM client config, the Monitor LLM client config, and the top-level
// harness manifest (which monitors and risk tests to register). Config
// loading itself sits outside the harness's core contract, but the
// concrete format and search behavior follow the rest of the ambient
// stack: gopkg.in/yaml.v3, with a directory-walking-upward search for a
// conventional filename when no explicit path is given.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trinityguard/sentinel/llmclient"
)

// HarnessConfig is the top-level manifest: which LLM backs the MAS and
// which backs the Monitor, plus the names of monitors and risk tests to
// register with the coordinator (resolved against a caller-supplied
// registry of constructors — this package only carries the names).
type HarnessConfig struct {
	MASLLM     llmclient.Config        `yaml:"mas_llm"`
	MonitorLLM llmclient.MonitorConfig `yaml:"monitor_llm"`
	Monitors   []string                `yaml:"monitors"`
	RiskTests  []string                `yaml:"risk_tests"`
	PromptDir  string                  `yaml:"prompt_dir"`
	TraceFile  string                  `yaml:"trace_file"`
}

// Load reads and parses a harness config file at path.
func Load(path string) (*HarnessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg HarnessConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultFilename is the conventional harness config name searched for by
// LoadFromDir when no explicit file is named.
const defaultFilename = "harness.yaml"

// LoadFromDir searches dir and its parents for defaultFilename, walking
// upward until found or the filesystem root is reached.
func LoadFromDir(dir string) (*HarnessConfig, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(absDir, defaultFilename)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("config: no %s found in %s or parent directories", defaultFilename, dir)
		}
		absDir = parent
	}
}

// LoadLLMConfig reads a standalone LLM client config file (either the MAS
// LLM or Monitor LLM config — each is its own file).
func LoadLLMConfig(path string) (llmclient.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llmclient.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg llmclient.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return llmclient.Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadMonitorLLMConfig reads a Monitor LLM client config file.
func LoadMonitorLLMConfig(path string) (llmclient.MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llmclient.MonitorConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg llmclient.MonitorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return llmclient.MonitorConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveAPIKey returns cfg.APIKey if set, otherwise the value of the
// environment variable named by cfg.APIKeyEnv.
func ResolveAPIKey(cfg llmclient.Config) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	if cfg.APIKeyEnv != "" {
		return os.Getenv(cfg.APIKeyEnv)
	}
	return ""
}
