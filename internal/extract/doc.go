// Package extract turns one fetched article page into a normalized
// record: headline, body excerpt, and optional cover image reference.
//
// Extraction is best effort per article. A missing title downgrades the
// record to a partial failure that stays in the report but is excluded
// from translation and frequency analysis; a missing image or excerpt
// is not an error at all. Only a transport failure on the article page
// itself, after retries, marks the record failed.
package extract
