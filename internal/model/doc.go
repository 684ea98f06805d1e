// Package model defines the data structures shared across the headline
// pipeline: article references and records, translation results, the
// word frequency table, and the run report that aggregates everything.
package model
