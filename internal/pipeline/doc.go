// Package pipeline orders the run through its states: listing,
// extraction, translation, analysis. Only article discovery can abort a
// run; every later step absorbs its failures into the run report so a
// single broken article or flaky translation never discards the rest of
// the work.
package pipeline
