package store

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode string `yaml:"mode"` // DRY_RUN or LIVE

	LLM struct {
		Provider       string  `yaml:"provider"` // OPENAI or NOOP
		Model          string  `yaml:"model"`
		Temperature    float64 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Broker struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		ClientID int    `yaml:"client_id"`
	} `yaml:"broker"`

	News struct {
		Enabled        bool `yaml:"enabled"`
		MaxHeadlines   int  `yaml:"max_headlines"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.LLM.Provider != "OPENAI" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", c.LLM.Temperature)
	}
	if c.Broker.Port <= 0 || c.Broker.Port > 65535 {
		return fmt.Errorf("broker.port must be a valid TCP port, got %d", c.Broker.Port)
	}
	return nil
}

// LoadConfig reads the yaml config, applies defaults and environment
// overrides (IB_HOST, IB_PORT, IB_CLIENT, OPENAI_MODEL), and validates.
// A missing config file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// run on defaults
	default:
		return nil, err
	}

	applyDefaults(&c)
	applyEnvOverrides(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "OPENAI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.Broker.Host == "" {
		c.Broker.Host = "127.0.0.1"
	}
	if c.Broker.Port == 0 {
		c.Broker.Port = 7497
	}
	if c.Broker.ClientID == 0 {
		c.Broker.ClientID = 1
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("IB_HOST"); v != "" {
		c.Broker.Host = v
	}
	if v := os.Getenv("IB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Broker.Port = n
		}
	}
	if v := os.Getenv("IB_CLIENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Broker.ClientID = n
		}
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.LLM.Model = v
	}
	// Legacy name used by earlier deployments.
	if v := os.Getenv("MODEL"); v != "" && os.Getenv("OPENAI_MODEL") == "" {
		c.LLM.Model = v
	}
}
