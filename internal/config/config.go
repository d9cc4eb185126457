package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codeforge/codeforge/internal/review"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = ".codeforge.yaml"

// Config holds all settings for a review run. Values merge in order:
// defaults, config file, CODEFORGE_* environment variables, flag overrides.
type Config struct {
	Reviewers         []string `yaml:"reviewers"`
	Provider          string   `yaml:"llm_provider"`
	Model             string   `yaml:"llm_model"`
	MaxFindings       int      `yaml:"max_findings"`
	SeverityThreshold string   `yaml:"severity_threshold"`
	Format            string   `yaml:"format"`

	// Credentials come from the environment only, never from files.
	GitHubToken string `yaml:"-"`
	APIKey      string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Reviewers:         []string{"security", "correctness", "performance", "style"},
		Provider:          "openai",
		Model:             "gpt-4o",
		MaxFindings:       20,
		SeverityThreshold: "low",
		Format:            "terminal",
	}
}

// Load builds the effective configuration. path may be empty, in which case
// DefaultFile is used when present. overrides carries non-empty flag values
// keyed by setting name; they win over everything else.
func Load(path string, overrides map[string]string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyOverrides(cfg, overrides)
	loadCredentials(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CODEFORGE_REVIEWERS"); v != "" {
		cfg.Reviewers = splitList(v)
	}
	if v := os.Getenv("CODEFORGE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("CODEFORGE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CODEFORGE_MAX_FINDINGS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CODEFORGE_MAX_FINDINGS must be an integer, got %q", v)
		}
		cfg.MaxFindings = n
	}
	if v := os.Getenv("CODEFORGE_SEVERITY_THRESHOLD"); v != "" {
		cfg.SeverityThreshold = v
	}
	if v := os.Getenv("CODEFORGE_FORMAT"); v != "" {
		cfg.Format = v
	}
	return nil
}

func applyOverrides(cfg *Config, overrides map[string]string) {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch key {
		case "reviewers":
			cfg.Reviewers = splitList(value)
		case "provider":
			cfg.Provider = value
		case "model":
			cfg.Model = value
		case "max-findings":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.MaxFindings = n
			}
		case "severity-threshold":
			cfg.SeverityThreshold = value
		case "format":
			cfg.Format = value
		}
	}
}

// loadCredentials reads tokens from the environment. LLM_API_KEY wins, with
// provider-specific variables as fallback.
func loadCredentials(cfg *Config) {
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

	cfg.APIKey = os.Getenv("LLM_API_KEY")
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if len(c.Reviewers) == 0 {
		return fmt.Errorf("at least one reviewer must be configured")
	}
	for _, r := range c.Reviewers {
		if _, err := review.ParseKind(r); err != nil {
			return err
		}
	}
	if c.Provider != "openai" && c.Provider != "anthropic" {
		return fmt.Errorf("llm_provider must be openai or anthropic, got %q", c.Provider)
	}
	if c.MaxFindings < 0 {
		return fmt.Errorf("max_findings must be non-negative, got %d", c.MaxFindings)
	}
	if !review.ValidSeverity(review.Severity(c.SeverityThreshold)) {
		return fmt.Errorf("severity_threshold must be one of critical, high, medium, low, info; got %q", c.SeverityThreshold)
	}
	switch c.Format {
	case "terminal", "json", "markdown":
	default:
		return fmt.Errorf("format must be terminal, json, or markdown; got %q", c.Format)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
