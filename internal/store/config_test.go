package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mode != "DRY_RUN" {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if cfg.LLM.Provider != "OPENAI" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM defaults = %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != 0.7 || cfg.LLM.TimeoutSeconds != 120 {
		t.Errorf("LLM tuning defaults = %+v", cfg.LLM)
	}
	if cfg.Broker.Host != "127.0.0.1" || cfg.Broker.Port != 7497 || cfg.Broker.ClientID != 1 {
		t.Errorf("Broker defaults = %+v", cfg.Broker)
	}
}

func TestLoadConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := `mode: LIVE
llm:
  provider: OPENAI
  model: gpt-4o
  temperature: 0.2
broker:
  host: 10.0.0.5
  port: 4002
  client_id: 7
news:
  enabled: true
  max_headlines: 3
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mode != "LIVE" || cfg.LLM.Model != "gpt-4o" || cfg.LLM.Temperature != 0.2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Broker.Host != "10.0.0.5" || cfg.Broker.Port != 4002 || cfg.Broker.ClientID != 7 {
		t.Errorf("broker = %+v", cfg.Broker)
	}
	if !cfg.News.Enabled || cfg.News.MaxHeadlines != 3 {
		t.Errorf("news = %+v", cfg.News)
	}
	// unset fields still default
	if cfg.News.TimeoutSeconds != 10 {
		t.Errorf("news timeout default = %d", cfg.News.TimeoutSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IB_HOST", "192.168.1.50")
	t.Setenv("IB_PORT", "7496")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Broker.Host != "192.168.1.50" || cfg.Broker.Port != 7496 {
		t.Errorf("broker overrides = %+v", cfg.Broker)
	}
	if cfg.LLM.Model != "gpt-4.1-mini" {
		t.Errorf("model override = %q", cfg.LLM.Model)
	}
}

func TestLegacyModelEnv(t *testing.T) {
	t.Setenv("MODEL", "gpt-4o")
	t.Setenv("OPENAI_MODEL", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("legacy MODEL ignored, model = %q", cfg.LLM.Model)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "PAPER" }},
		{"bad provider", func(c *Config) { c.LLM.Provider = "GEMINI" }},
		{"bad temperature", func(c *Config) { c.LLM.Temperature = 3.5 }},
		{"bad port", func(c *Config) { c.Broker.Port = 99999 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Config
			applyDefaults(&c)
			tc.mut(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
