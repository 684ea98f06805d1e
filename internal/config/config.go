package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. All of these can be overridden via CLI
// flags or the profile file; keeping retry and concurrency knobs here
// rather than as hard-coded constants keeps the pipeline testable with
// deterministic fakes.
const (
	// DefaultArticleCount is the number of articles sampled from the
	// section page per run.
	DefaultArticleCount = 5

	// DefaultExcerptLength is the excerpt length in Unicode characters.
	// The cut is a hard length cut, not word-boundary snapping.
	DefaultExcerptLength = 500

	// DefaultSourceLang is the language articles are expected in.
	DefaultSourceLang = "es"

	// DefaultTargetLang is the language titles are translated into.
	DefaultTargetLang = "en"

	// DefaultTimeout bounds each network operation. A timed-out request
	// converts to a local failure rather than hanging the run.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the attempt bound for transient failures on
	// article pages and translation calls.
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the initial wait between retries, doubled
	// each attempt.
	DefaultRetryBackoff = 500 * time.Millisecond

	// DefaultConcurrency is the number of articles extracted in
	// parallel. Each extraction touches a disjoint network resource, so
	// this only bounds local and remote load.
	DefaultConcurrency = 4

	// DefaultTranslateConcurrency bounds outstanding requests to the
	// translation service. Kept low to stay under rate limits.
	DefaultTranslateConcurrency = 2

	// DefaultMinWordLength is the minimum token length kept by the
	// frequency analyzer.
	DefaultMinWordLength = 2

	// DefaultMinRepeatCount is the display threshold report writers use
	// for the frequency table. The table itself always keeps every
	// count >= 1.
	DefaultMinRepeatCount = 1

	// DefaultUserAgent identifies headline in HTTP requests.
	DefaultUserAgent = "headline/1.0 (+https://github.com/nao1215/headline)"

	// DefaultMaxBodySize limits response bodies to prevent memory
	// exhaustion from unexpectedly large pages.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "headline"
)

// DefaultStopWords returns the default English stop-word set removed by
// the frequency analyzer. The exact list is configuration, not
// contract: profiles and flags can replace it entirely.
func DefaultStopWords() []string {
	return []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"from", "has", "have", "he", "her", "his", "in", "is", "it",
		"its", "of", "on", "or", "our", "she", "that", "the", "their",
		"they", "this", "to", "was", "we", "were", "will", "with", "you",
	}
}

// Config holds all options for one pipeline run. It is populated from
// CLI flags and the optional profile file, then passed through the
// application via dependency injection rather than global state.
type Config struct {
	// SectionURL is the news section entry point to sample.
	SectionURL string

	// ArticleCount is the number of articles to process (N).
	ArticleCount int

	// ExcerptLength is the excerpt cut in Unicode characters.
	ExcerptLength int

	// SourceLang and TargetLang form the translation language pair.
	SourceLang string
	TargetLang string

	// StopWords are removed by the frequency analyzer after folding.
	StopWords []string

	// MinWordLength drops short tokens from frequency analysis.
	MinWordLength int

	// MinRepeatCount is the display threshold for the frequency table
	// in rendered reports.
	MinRepeatCount int

	// ArticlePattern is a regular expression an article URL path must
	// match to qualify during discovery. Empty means any same-host link
	// with a dated path segment qualifies (the built-in default).
	ArticlePattern string

	// Timeout is the per-request timeout for all network operations.
	Timeout time.Duration

	// MaxRetries bounds retry attempts for article pages and
	// translation calls. Asset fetches always use at most one retry.
	MaxRetries int

	// RetryBackoff is the initial backoff between retries.
	RetryBackoff time.Duration

	// Concurrency bounds parallel article extraction.
	Concurrency int

	// TranslateConcurrency bounds outstanding translation requests.
	TranslateConcurrency int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// MaxBodySize caps response bodies in bytes.
	MaxBodySize int64

	// ImagesDir is where cover images are stored.
	// Defaults to the XDG data directory.
	ImagesDir string

	// SaveImages enables the asset fetching stage.
	SaveImages bool

	// DBDir is the directory holding the run history database.
	DBDir string

	// SaveToDB persists completed runs for the history command.
	SaveToDB bool

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport and MarkdownReport select the output format.
	// Mutually exclusive; neither means human-readable text.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// ConfigFilePath is an explicit profile file path. Empty means
	// search .headline in the current directory, then the home
	// directory.
	ConfigFilePath string

	// Profiles holds per-section overrides loaded from the profile
	// file.
	Profiles *File
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be error prone; this
// constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		ArticleCount:         DefaultArticleCount,
		ExcerptLength:        DefaultExcerptLength,
		SourceLang:           DefaultSourceLang,
		TargetLang:           DefaultTargetLang,
		StopWords:            DefaultStopWords(),
		MinWordLength:        DefaultMinWordLength,
		MinRepeatCount:       DefaultMinRepeatCount,
		Timeout:              DefaultTimeout,
		MaxRetries:           DefaultMaxRetries,
		RetryBackoff:         DefaultRetryBackoff,
		Concurrency:          DefaultConcurrency,
		TranslateConcurrency: DefaultTranslateConcurrency,
		UserAgent:            DefaultUserAgent,
		MaxBodySize:          DefaultMaxBodySize,
		SaveImages:           true,
	}
}

// XDGDataDir returns the XDG data directory for headline.
// On Linux: ~/.local/share/headline
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for headline.
// On Linux: ~/.config/headline
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for headline.
// On Linux: ~/.cache/headline
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// ImagesDirOrDefault returns the configured image directory, falling
// back to <XDG data dir>/images.
func (c *Config) ImagesDirOrDefault() string {
	if c.ImagesDir != "" {
		return c.ImagesDir
	}
	return filepath.Join(XDGDataDir(), "images")
}

// Validate checks the configuration and returns the first problem
// found. It is called once after CLI parsing, before any network
// activity.
func (c *Config) Validate() error {
	if c.SectionURL == "" {
		return ErrNoSection
	}
	if c.ArticleCount <= 0 {
		return ErrInvalidArticleCount
	}
	if c.ExcerptLength <= 0 {
		return ErrInvalidExcerptLength
	}
	if c.SourceLang == "" || c.TargetLang == "" {
		return ErrInvalidLanguagePair
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.RetryBackoff < 0 {
		return ErrInvalidRetryBackoff
	}
	if c.Concurrency <= 0 || c.TranslateConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MinWordLength <= 0 {
		return ErrInvalidMinWordLength
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
