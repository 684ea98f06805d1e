// Package main provides the entry point for the headline CLI.
//
// Headline samples the latest articles from a news section page,
// translates their titles, and reports word frequencies across the
// translated titles.
//
// Usage:
//
//	headline run https://elpais.com/internacional/
//	headline history
//
// See --help for all available options.
package main

// main is the entry point for headline.
func main() {
	Execute()
}
