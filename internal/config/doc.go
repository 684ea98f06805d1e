// Package config provides configuration structures and utilities for
// headline. It defines the run options for article discovery,
// extraction, translation, and report generation, plus the optional
// YAML profile file for per-section overrides.
package config
