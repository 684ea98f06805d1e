package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/headline/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// minRepeatCount is the lowest occurrence count shown in the
	// frequency table.
	minRepeatCount int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownMinRepeatCount hides frequency rows below the given count.
func WithMarkdownMinRepeatCount(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.minRepeatCount = n
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:     newBaseWriter(output),
		minRepeatCount: 1,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if report.State == model.RunStateAborted {
		md.Cautionf("Run aborted: %s", report.ErrorMessage)
		return len(md.String()), md.Build()
	}

	w.writeArticles(md, report)
	w.writeTranslationChart(md, report)
	w.writeFrequency(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the run header with section information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Headline Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Section", "`" + report.SectionURL + "`"},
			{"Languages", report.SourceLang + " → " + report.TargetLang},
			{"Run Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Articles", strconv.Itoa(len(report.Records)) + " of " + strconv.Itoa(report.RequestedCount) + " requested"},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *MarkdownWriter) statusText(report *model.RunReport) string {
	switch {
	case report.State == model.RunStateAborted:
		return "❌ Aborted"
	case report.ExtractionFailureCount() > 0 || report.TranslationFailureCount() > 0:
		return "⚠️ Complete (with failures)"
	default:
		return "✅ Complete"
	}
}

// writeArticles writes the per-article table.
func (w *MarkdownWriter) writeArticles(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Records) == 0 {
		return
	}

	md.H2("Articles")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Records))
	for i := range report.Records {
		record := &report.Records[i]

		translated := ""
		if i < len(report.Translations) {
			translated = w.translationCell(&report.Translations[i])
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			record.Title,
			translated,
			string(record.Status),
			w.imageCell(record),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Title", "Translated", "Status", "Cover Image"},
		Rows:   rows,
	})
	md.PlainText("")

	if failures := report.ExtractionFailureCount(); failures > 0 {
		md.Warningf("%d article(s) did not complete extraction.", failures)
	}
}

// translationCell renders one translation outcome.
func (w *MarkdownWriter) translationCell(result *model.TranslationResult) string {
	switch result.Status {
	case model.TranslationStatusOK:
		return result.TranslatedTitle
	case model.TranslationStatusFailed:
		return "_failed: " + result.Reason + "_"
	default:
		return "_skipped: " + result.Reason + "_"
	}
}

// imageCell renders one record's cover image outcome.
func (w *MarkdownWriter) imageCell(record *model.ArticleRecord) string {
	switch {
	case record.AssetFailure != "":
		return "failed"
	case record.ImagePath != "":
		return "`" + record.ImagePath + "`"
	case record.ImageRef != "":
		return "not stored"
	default:
		return "none"
	}
}

// writeTranslationChart writes a mermaid pie chart of translation
// outcomes.
func (w *MarkdownWriter) writeTranslationChart(md *markdown.Markdown, report *model.RunReport) {
	translated := report.TranslatedCount()
	failed := report.TranslationFailureCount()
	skipped := len(report.Translations) - translated - failed
	if translated+failed+skipped == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Translation Outcomes"),
		piechart.WithShowData(true),
	)

	if translated > 0 {
		chart.LabelAndIntValue("Translated", uint64(translated))
	}
	if failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(failed))
	}
	if skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(skipped))
	}

	md.H2("Translation Summary")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	if failed > 0 {
		md.Warningf("%d title(s) failed translation and are excluded from the frequency table.", failed)
	}
}

// writeFrequency writes the word frequency table.
func (w *MarkdownWriter) writeFrequency(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Word Frequency")
	md.PlainText("")

	rendered := repeatedWords(report, w.minRepeatCount)
	if len(rendered) == 0 {
		md.Note("No words to report.")
		return
	}

	rows := make([][]string, 0, len(rendered))
	for _, row := range rendered {
		rows = append(rows, []string{row.Word, strconv.Itoa(row.Count)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Word", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if hidden := len(report.Frequency) - len(rendered); hidden > 0 {
		md.PlainText(fmt.Sprintf("_%d word(s) below the repeat threshold are hidden._", hidden))
	}
}
