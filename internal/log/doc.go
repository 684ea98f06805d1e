// Package log provides logging utilities built on top of the standard
// slog package.
//
// The pipeline routinely logs values derived from scraped pages:
// excerpts, raw HTML fragments, and long URLs. The TrimHandler keeps
// debug output readable by truncating oversized string attributes
// before they reach the underlying handler, so a single noisy page
// cannot flood the terminal.
//
// # Usage
//
//	// Create a trimming logger
//	logger := log.NewTrimLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("extracted article",
//	    "excerpt", excerpt, // truncated to the attribute limit
//	    "url", articleURL,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
