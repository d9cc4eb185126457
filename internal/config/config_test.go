package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// clearEnv blanks every variable Load reads so host state cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CODEFORGE_REVIEWERS", "CODEFORGE_PROVIDER", "CODEFORGE_MODEL",
		"CODEFORGE_MAX_FINDINGS", "CODEFORGE_SEVERITY_THRESHOLD", "CODEFORGE_FORMAT",
		"GITHUB_TOKEN", "LLM_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".codeforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	want := []string{"security", "correctness", "performance", "style"}
	if !reflect.DeepEqual(cfg.Reviewers, want) {
		t.Errorf("Reviewers = %v, want %v", cfg.Reviewers, want)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.MaxFindings != 20 {
		t.Errorf("MaxFindings = %d", cfg.MaxFindings)
	}
	if cfg.SeverityThreshold != "low" {
		t.Errorf("SeverityThreshold = %q", cfg.SeverityThreshold)
	}
	if cfg.Format != "terminal" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
reviewers:
  - security
  - correctness
llm_provider: anthropic
llm_model: claude-sonnet-4-20250514
max_findings: 5
severity_threshold: medium
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Reviewers, []string{"security", "correctness"}) {
		t.Errorf("Reviewers = %v", cfg.Reviewers)
	}
	if cfg.Provider != "anthropic" || cfg.Model != "claude-sonnet-4-20250514" {
		t.Errorf("provider/model = %s/%s", cfg.Provider, cfg.Model)
	}
	if cfg.MaxFindings != 5 {
		t.Errorf("MaxFindings = %d", cfg.MaxFindings)
	}
	if cfg.SeverityThreshold != "medium" {
		t.Errorf("SeverityThreshold = %q", cfg.SeverityThreshold)
	}
	if cfg.Format != "terminal" {
		t.Errorf("Format should keep its default, got %q", cfg.Format)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "llm_model: gpt-4o\n")
	t.Setenv("CODEFORGE_MODEL", "gpt-4o-mini")
	t.Setenv("CODEFORGE_REVIEWERS", "style, performance")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want env value", cfg.Model)
	}
	if !reflect.DeepEqual(cfg.Reviewers, []string{"style", "performance"}) {
		t.Errorf("Reviewers = %v", cfg.Reviewers)
	}
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CODEFORGE_PROVIDER", "openai")

	cfg, err := Load(writeConfig(t, ""), map[string]string{
		"provider":           "anthropic",
		"model":              "claude-sonnet-4-20250514",
		"max-findings":       "3",
		"severity-threshold": "high",
		"format":             "json",
		"reviewers":          "security",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want flag value", cfg.Provider)
	}
	if cfg.MaxFindings != 3 || cfg.SeverityThreshold != "high" || cfg.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Reviewers, []string{"security"}) {
		t.Errorf("Reviewers = %v", cfg.Reviewers)
	}
}

func TestLoad_EmptyOverrideIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""), map[string]string{"model": ""})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, empty override should be ignored", cfg.Model)
	}
}

func TestLoad_Credentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := Load(writeConfig(t, ""), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "gh-token" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.APIKey != "oa-key" {
		t.Errorf("APIKey = %q, want provider-specific fallback", cfg.APIKey)
	}

	t.Setenv("LLM_API_KEY", "generic-key")
	cfg, err = Load(writeConfig(t, ""), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "generic-key" {
		t.Errorf("APIKey = %q, LLM_API_KEY should win", cfg.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no reviewers", func(c *Config) { c.Reviewers = nil }},
		{"unknown reviewer", func(c *Config) { c.Reviewers = []string{"vibes"} }},
		{"unknown provider", func(c *Config) { c.Provider = "mystery" }},
		{"negative max findings", func(c *Config) { c.MaxFindings = -1 }},
		{"bad threshold", func(c *Config) { c.SeverityThreshold = "urgent" }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
