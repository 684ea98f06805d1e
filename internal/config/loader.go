package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default profile file name.
const DefaultConfigFile = ".headline"

// ErrConfigNotFound is returned when the profile file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// SectionProfile holds per-section overrides keyed by section host.
// This lets one installation sample several publications with different
// language pairs and stop-word sets.
type SectionProfile struct {
	// ArticleCount overrides the global article count. Zero means use
	// the global value.
	ArticleCount int `yaml:"article_count,omitempty"`

	// ExcerptLength overrides the excerpt cut. Zero means global.
	ExcerptLength int `yaml:"excerpt_length,omitempty"`

	// SourceLang and TargetLang override the language pair.
	SourceLang string `yaml:"source_lang,omitempty"`
	TargetLang string `yaml:"target_lang,omitempty"`

	// StopWords replaces the stop-word set entirely when non-empty.
	StopWords []string `yaml:"stop_words,omitempty"`

	// MinWordLength overrides the minimum token length. Zero means
	// global.
	MinWordLength int `yaml:"min_word_length,omitempty"`

	// ArticlePattern overrides the article URL path pattern.
	ArticlePattern string `yaml:"article_pattern,omitempty"`

	// Timeout overrides the per-request timeout. Zero means global.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// File represents the structure of the .headline profile file.
type File struct {
	// Sections maps section hosts (e.g. "elpais.com") to their
	// overrides.
	Sections map[string]SectionProfile `yaml:"sections,omitempty"`

	// Defaults contains overrides applied to every section unless the
	// section-specific profile overrides them again.
	Defaults SectionProfile `yaml:"defaults,omitempty"`
}

// GetSectionProfile returns the merged profile for a section host.
func (f *File) GetSectionProfile(host string) SectionProfile {
	result := f.Defaults

	p, ok := f.Sections[host]
	if !ok {
		return result
	}
	if p.ArticleCount != 0 {
		result.ArticleCount = p.ArticleCount
	}
	if p.ExcerptLength != 0 {
		result.ExcerptLength = p.ExcerptLength
	}
	if p.SourceLang != "" {
		result.SourceLang = p.SourceLang
	}
	if p.TargetLang != "" {
		result.TargetLang = p.TargetLang
	}
	if len(p.StopWords) > 0 {
		result.StopWords = p.StopWords
	}
	if p.MinWordLength != 0 {
		result.MinWordLength = p.MinWordLength
	}
	if p.ArticlePattern != "" {
		result.ArticlePattern = p.ArticlePattern
	}
	if p.Timeout != 0 {
		result.Timeout = p.Timeout
	}
	return result
}

// Apply copies the non-zero profile fields onto the config.
// Flag values already set on the config are overwritten only where the
// profile specifies a value; callers that want flags to win should
// re-apply flag values after Apply.
func (c *Config) Apply(p SectionProfile) {
	if p.ArticleCount != 0 {
		c.ArticleCount = p.ArticleCount
	}
	if p.ExcerptLength != 0 {
		c.ExcerptLength = p.ExcerptLength
	}
	if p.SourceLang != "" {
		c.SourceLang = p.SourceLang
	}
	if p.TargetLang != "" {
		c.TargetLang = p.TargetLang
	}
	if len(p.StopWords) > 0 {
		c.StopWords = p.StopWords
	}
	if p.MinWordLength != 0 {
		c.MinWordLength = p.MinWordLength
	}
	if p.ArticlePattern != "" {
		c.ArticlePattern = p.ArticlePattern
	}
	if p.Timeout != 0 {
		c.Timeout = p.Timeout
	}
}

// LoadConfigFile loads section profiles from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers
// decide whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Sections == nil {
		f.Sections = make(map[string]SectionProfile)
	}

	return &f, nil
}

// FindConfigFile searches for the profile file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .headline in the current directory
// 3. Look for .headline in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
