package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinel errors let callers use errors.Is() while still
// carrying human-readable messages.
var (
	// ErrNoSection is returned when no section URL was provided.
	ErrNoSection = errors.New("no section URL specified")

	// ErrInvalidArticleCount is returned when the article count is not
	// positive.
	ErrInvalidArticleCount = errors.New("invalid article count: must be positive")

	// ErrInvalidExcerptLength is returned when the excerpt length is
	// not positive.
	ErrInvalidExcerptLength = errors.New("invalid excerpt length: must be positive")

	// ErrInvalidLanguagePair is returned when either language code is
	// empty.
	ErrInvalidLanguagePair = errors.New("invalid language pair: source and target languages are required")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxRetries is returned when the retry bound is
	// negative. Use 0 to disable retries.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidRetryBackoff is returned when the backoff is negative.
	ErrInvalidRetryBackoff = errors.New("invalid retry backoff: must be non-negative")

	// ErrInvalidConcurrency is returned when either concurrency bound
	// is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMinWordLength is returned when the minimum word length
	// is not positive.
	ErrInvalidMinWordLength = errors.New("invalid minimum word length: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size cap is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
