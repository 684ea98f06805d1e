// Package crawler discovers article references on a news section page.
//
// The Lister fetches the section entry point, extracts anchors with a
// lightweight HTML walk, filters them down to article-looking URLs on
// the same host, canonicalizes and deduplicates them, and returns the
// first N in page order. Discovery failure is the only fatal condition
// in the whole pipeline: with nothing to process there is nothing left
// to do.
package crawler
