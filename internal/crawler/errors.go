package crawler

import (
	"errors"
	"fmt"
)

// ErrNoArticles is returned (wrapped in a DiscoveryError) when the
// section page yields zero qualifying article links.
var ErrNoArticles = errors.New("no article links found on section page")

// DiscoveryError is the fatal error class of the pipeline: the section
// page could not be fetched, or it contained nothing to process. All
// other failure classes are absorbed into the run report.
type DiscoveryError struct {
	// SectionURL is the section entry point that failed.
	SectionURL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.SectionURL, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
