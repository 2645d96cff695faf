package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: "gpt-4o-mini"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("TTLSeconds = %d, want default 3600", cfg.Cache.TTLSeconds)
	}
	if cfg.Concurrency.RPM != 60 || cfg.Concurrency.QPS != 2 {
		t.Errorf("concurrency defaults not applied: %+v", cfg.Concurrency)
	}
	if cfg.Output.HTMLPath != "unseen_spots.html" {
		t.Errorf("HTMLPath = %q, want default", cfg.Output.HTMLPath)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-from-env")
	t.Setenv("LLM_API_KEY", "llm-from-env")

	path := writeConfig(t, `
maps:
  api_key: "from-file"
llm:
  api_key: "from-file"
  model: "gpt-4o-mini"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Maps.APIKey != "maps-from-env" {
		t.Errorf("Maps.APIKey = %q, env must win", cfg.Maps.APIKey)
	}
	if cfg.LLM.APIKey != "llm-from-env" {
		t.Errorf("LLM.APIKey = %q, env must win", cfg.LLM.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Errorf("empty config accepted, want rejection")
	}

	cfg.Maps.APIKey = "m"
	cfg.LLM.APIKey = "l"
	cfg.LLM.Model = "gpt-4o-mini"
	if err := cfg.Validate(); err != nil {
		t.Errorf("complete config rejected: %v", err)
	}
}
