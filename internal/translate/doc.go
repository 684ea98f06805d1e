// Package translate converts article titles between languages through an
// external translation service. Transient service failures are retried
// with exponential backoff; a title that still fails after retries is
// reported as failed rather than aborting the run.
package translate
