// Package fetch provides the HTTP collaborator the pipeline depends
// on: page fetching for discovery and extraction, and binary fetching
// for cover images.
//
// The Client retries transient failures (timeouts, 429 and 5xx
// responses) with exponential backoff; structural failures such as 404s
// are returned immediately. All knobs are configuration so tests can
// run with deterministic fakes.
package fetch
