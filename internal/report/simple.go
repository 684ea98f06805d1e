package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/headline/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// minRepeatCount is the lowest occurrence count shown in the
	// frequency section.
	minRepeatCount int

	// verbose enables excerpts and image details in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMinRepeatCount hides frequency rows below the given count.
func WithMinRepeatCount(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.minRepeatCount = n
	}
}

// WithVerbose enables verbose output with excerpts and image details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:     newBaseWriter(output),
		minRepeatCount: 1,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	if report.State == model.RunStateAborted {
		sb.WriteString(fmt.Sprintf("Run aborted: %s\n\n", report.ErrorMessage))
		return w.output.Write([]byte(sb.String()))
	}

	w.writeArticles(&sb, report)
	w.writeFailures(&sb, report)
	w.writeFrequency(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run header.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         HEADLINE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Section:     %s\n", report.SectionURL))
	sb.WriteString(fmt.Sprintf("Languages:   %s -> %s\n", report.SourceLang, report.TargetLang))
	sb.WriteString(fmt.Sprintf("Run Date:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Articles:    %d extracted, %d requested\n", len(report.Records), report.RequestedCount))

	switch {
	case report.State == model.RunStateAborted:
		sb.WriteString("Status:      ABORTED\n")
	case report.ExtractionFailureCount() > 0 || report.TranslationFailureCount() > 0:
		sb.WriteString("Status:      Complete (with failures)\n")
	default:
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeArticles writes one block per article in discovery order.
func (w *SimpleWriter) writeArticles(sb *strings.Builder, report *model.RunReport) {
	if len(report.Records) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nARTICLES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i := range report.Records {
		record := &report.Records[i]

		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, record.SourceRef))

		if record.Status != model.FetchStatusOK {
			sb.WriteString(fmt.Sprintf("    status:     %s (%s)\n\n", record.Status, record.Reason))
			continue
		}

		sb.WriteString(fmt.Sprintf("    title:      %s\n", record.Title))
		if i < len(report.Translations) {
			w.writeTranslation(sb, &report.Translations[i])
		}
		if w.verbose {
			w.writeDetail(sb, record)
		}
		sb.WriteString("\n")
	}
}

// writeTranslation writes one record's translation line.
func (w *SimpleWriter) writeTranslation(sb *strings.Builder, result *model.TranslationResult) {
	switch result.Status {
	case model.TranslationStatusOK:
		sb.WriteString(fmt.Sprintf("    translated: %s\n", result.TranslatedTitle))
	case model.TranslationStatusFailed:
		sb.WriteString(fmt.Sprintf("    translated: (failed: %s)\n", result.Reason))
	case model.TranslationStatusSkipped:
		sb.WriteString(fmt.Sprintf("    translated: (skipped: %s)\n", result.Reason))
	}
}

// writeDetail writes the verbose-only lines of one record.
func (w *SimpleWriter) writeDetail(sb *strings.Builder, record *model.ArticleRecord) {
	if record.Excerpt != "" {
		sb.WriteString(fmt.Sprintf("    excerpt:    %s\n", record.Excerpt))
	}
	switch {
	case record.AssetFailure != "":
		sb.WriteString(fmt.Sprintf("    image:      (failed: %s)\n", record.AssetFailure))
	case record.ImagePath != "":
		sb.WriteString(fmt.Sprintf("    image:      %s\n", record.ImagePath))
	case record.ImageRef != "":
		sb.WriteString(fmt.Sprintf("    image:      %s (not stored)\n", record.ImageRef))
	}
	if meta := record.ImageMeta; !meta.Empty() {
		sb.WriteString(fmt.Sprintf("    image meta: artist=%q software=%q model=%q captured=%q\n",
			meta.Artist, meta.Software, meta.CameraModel, meta.CapturedAt))
	}
}

// writeFailures writes the failure summary section.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.RunReport) {
	extractFailures := report.ExtractionFailureCount()
	translateFailures := report.TranslationFailureCount()
	assetFailures := report.AssetFailureCount()
	if extractFailures == 0 && translateFailures == 0 && assetFailures == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nFAILURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if extractFailures > 0 {
		sb.WriteString(fmt.Sprintf("  extraction:  %d of %d articles\n", extractFailures, len(report.Records)))
	}
	if translateFailures > 0 {
		sb.WriteString(fmt.Sprintf("  translation: %d titles\n", translateFailures))
	}
	if assetFailures > 0 {
		sb.WriteString(fmt.Sprintf("  images:      %d covers\n", assetFailures))
	}
	sb.WriteString("\n")
}

// writeFrequency writes the word frequency table.
func (w *SimpleWriter) writeFrequency(sb *strings.Builder, report *model.RunReport) {
	rows := repeatedWords(report, w.minRepeatCount)

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nWORD FREQUENCY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(rows) == 0 {
		sb.WriteString("  No words to report\n\n")
		return
	}

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %4d  %s\n", row.Count, row.Word))
	}
	sb.WriteString("\n")
}
