// Package report renders run reports in text, JSON, and Markdown
// formats. All writers consume the same run report, so every format
// shows the same articles, translations, and frequency table.
package report
