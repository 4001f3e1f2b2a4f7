package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment  string             `toml:"environment"` // "development" or "production"
	Logging      LoggingConfig      `toml:"logging"`
	Gemini       GeminiConfig       `toml:"gemini"`
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Markets      MarketsConfig      `toml:"markets"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// GeminiConfig is the static extraction profile. It is read-only for the
// lifetime of the process and handed to the extraction client at
// construction time - no pipeline run ever mutates it.
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // User must provide API key (FINSIGHT_GEMINI_API_KEY or config)
	Model       string  `toml:"model"`       // Model for the extraction request
	Temperature float32 `toml:"temperature"` // Sampling temperature
	TopP        float32 `toml:"top_p"`       // Nucleus sampling parameter
	Timeout     string  `toml:"timeout"`     // Request timeout, e.g. "2m"
}

// AlphaVantageConfig configures the verified-news provider. An empty API
// key is a configuration warning, not an error: enrichment no-ops.
type AlphaVantageConfig struct {
	APIKey    string `toml:"api_key"`    // Optional; enrichment skipped when empty
	BaseURL   string `toml:"base_url"`   // Override for tests
	Limit     int    `toml:"limit"`      // Max news items per lookup
	RateLimit int    `toml:"rate_limit"` // Requests per second
	Timeout   string `toml:"timeout"`    // Request timeout, e.g. "30s"
}

// MarketsConfig holds market conventions used when normalising tickers.
type MarketsConfig struct {
	DefaultExchange string `toml:"default_exchange"` // Exchange assumed for bare ticker codes
}

// NewDefaultConfig returns the built-in defaults. Values mirror the
// extraction profile the analysis task was tuned with: temperature 1.0,
// topP 0.95, search grounding on.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (no fallback)
			Model:       "gemini-2.5-flash",
			Temperature: 1.0,
			TopP:        0.95,
			Timeout:     "2m",
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey:    "",
			BaseURL:   "https://www.alphavantage.co",
			Limit:     5,
			RateLimit: 1, // Free tier is heavily limited; never burst
			Timeout:   "30s",
		},
		Markets: MarketsConfig{
			DefaultExchange: "NYSE",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> env. Later files override earlier files, environment
// variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Logging
	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FINSIGHT_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Gemini (FINSIGHT_ prefix wins, plain GEMINI_API_KEY accepted as fallback)
	if key := os.Getenv("FINSIGHT_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("FINSIGHT_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if timeout := os.Getenv("FINSIGHT_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}

	// Alpha Vantage
	if key := os.Getenv("FINSIGHT_ALPHAVANTAGE_API_KEY"); key != "" {
		config.AlphaVantage.APIKey = key
	} else if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" && config.AlphaVantage.APIKey == "" {
		config.AlphaVantage.APIKey = key
	}
	if limit := os.Getenv("FINSIGHT_ALPHAVANTAGE_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			config.AlphaVantage.Limit = l
		}
	}

	// Markets
	if exchange := os.Getenv("FINSIGHT_DEFAULT_EXCHANGE"); exchange != "" {
		config.Markets.DefaultExchange = exchange
	}
}

// Warnings returns human-readable configuration warnings. None of these
// are fatal: a missing news key only disables enrichment, and a
// dubious-looking Gemini key still gets sent to the API.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.Gemini.APIKey == "" {
		warnings = append(warnings, "Gemini API key is not set (FINSIGHT_GEMINI_API_KEY or gemini.api_key); extraction requests will fail")
	} else if !strings.HasPrefix(c.Gemini.APIKey, "AIza") {
		warnings = append(warnings, "Gemini API key does not start with 'AIza'; this may be an invalid key")
	}

	if c.AlphaVantage.APIKey == "" {
		warnings = append(warnings, "Alpha Vantage API key is not set; verified news enrichment will be skipped")
	}

	return warnings
}
