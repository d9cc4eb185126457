// Package config loads review settings from .codeforge.yaml, the
// environment, and command-line overrides.
package config
