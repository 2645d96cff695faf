package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the pipeline needs at startup.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Maps        MapsConfig        `yaml:"maps"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the OpenAI-compatible chat model endpoint.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// MapsConfig configures the Google Maps Web Services client.
type MapsConfig struct {
	APIKey string `yaml:"api_key"`
}

// LogConfig controls log level and the optional log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig bounds calls against the model endpoint.
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// CacheConfig controls the stage-result memoization window.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// OutputConfig controls where the rendered report lands.
type OutputConfig struct {
	HTMLPath string `yaml:"html_path"`
}

// Load reads the YAML config at path, then overlays API keys from the
// environment (a .env file is honored if present). Environment values
// win so keys never need to live in the config file.
func Load(path string) (*Config, error) {
	// No .env file is fine; system env vars still apply.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		cfg.Maps.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Validate checks the settings without which no run can start.
func (c *Config) Validate() error {
	if c.Maps.APIKey == "" {
		return fmt.Errorf("maps.api_key is not set (or GOOGLE_MAPS_API_KEY)")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is not set (or LLM_API_KEY)")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is not set")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 2
	}
	if c.Concurrency.RPM == 0 {
		c.Concurrency.RPM = 60
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Output.HTMLPath == "" {
		c.Output.HTMLPath = "unseen_spots.html"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
