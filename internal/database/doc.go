// Package database persists completed run reports to a local SQLite
// database so past runs can be listed and re-rendered. The full report
// is stored as JSON alongside a few indexed summary columns; the schema
// stays deliberately flat because runs are append-only.
package database
