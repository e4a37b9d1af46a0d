package llmclient

import "time"

// Config configures one logical LLM client, loaded from its own YAML file.
// Two logical clients exist: one for the MAS LLM, driven only through the
// attached framework, and one for the Monitor LLM, driven through this
// package.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// MonitorConfig extends Config with the fields specific to Judge-driving
// clients: retry policy and judge-specific sampling parameters.
type MonitorConfig struct {
	Config            `yaml:",inline"`
	JudgeTemperature float64       `yaml:"judge_temperature"`
	JudgeMaxTokens   int           `yaml:"judge_max_tokens"`
	RetryCount       int           `yaml:"retry_count"`
	RetryDelay       time.Duration `yaml:"retry_delay"`
	Timeout          time.Duration `yaml:"timeout"`
}
