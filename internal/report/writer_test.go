package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/headline/internal/model"
)

// completedReport builds a done-state report with mixed outcomes.
func completedReport() *model.RunReport {
	report := model.NewRunReport("https://example.com/internacional", 3, "es", "en")
	report.State = model.RunStateDone
	report.Records = []model.ArticleRecord{
		{
			SourceRef: "https://example.com/2026-08-30/uno",
			Title:     "El futuro del trabajo",
			Excerpt:   "Primer parrafo.",
			ImagePath: "/tmp/images/uno.jpg",
			Status:    model.FetchStatusOK,
		},
		{
			SourceRef: "https://example.com/2026-08-30/dos",
			Title:     "La crisis climatica",
			Status:    model.FetchStatusOK,
		},
		{
			SourceRef: "https://example.com/2026-08-30/tres",
			Status:    model.FetchStatusPartial,
			Reason:    model.ReasonNoTitle,
		},
	}
	report.Translations = []model.TranslationResult{
		{SourceRef: report.Records[0].SourceRef, TranslatedTitle: "The future of work", Status: model.TranslationStatusOK},
		{SourceRef: report.Records[1].SourceRef, Status: model.TranslationStatusFailed, Reason: "service unavailable"},
		{SourceRef: report.Records[2].SourceRef, Status: model.TranslationStatusSkipped, Reason: model.ReasonNotExtracted},
	}
	report.Frequency = []model.WordCount{
		{Word: "future", Count: 2},
		{Word: "work", Count: 1},
	}
	return report
}

// abortedReport builds an aborted-state report.
func abortedReport() *model.RunReport {
	report := model.NewRunReport("https://example.com/internacional", 5, "es", "en")
	report.State = model.RunStateAborted
	report.Error = errors.New("no article links found")
	report.ErrorMessage = "no article links found"
	return report
}

func TestSimpleWriterWrite(t *testing.T) {
	t.Parallel()

	t.Run("renders articles, failures, and frequency", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewSimpleWriter(&buf)

		n, err := writer.Write(completedReport())
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if n != buf.Len() {
			t.Errorf("n = %d, buffer = %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"HEADLINE REPORT",
			"El futuro del trabajo",
			"The future of work",
			"(failed: service unavailable)",
			"partial_failure",
			"WORD FREQUENCY",
			"future",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("hides frequency rows below the repeat threshold", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewSimpleWriter(&buf, WithMinRepeatCount(2))

		if _, err := writer.Write(completedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "future") {
			t.Error("output should keep words at the threshold")
		}
		if strings.Contains(out, "work") {
			t.Error("output should hide words below the threshold")
		}
	})

	t.Run("verbose mode shows excerpts and images", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := writer.Write(completedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Primer parrafo.") {
			t.Error("verbose output should include the excerpt")
		}
		if !strings.Contains(out, "/tmp/images/uno.jpg") {
			t.Error("verbose output should include the stored image path")
		}
	})

	t.Run("aborted run renders the error only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewSimpleWriter(&buf)

		if _, err := writer.Write(abortedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Run aborted: no article links found") {
			t.Error("output should carry the abort reason")
		}
		if strings.Contains(out, "WORD FREQUENCY") {
			t.Error("aborted output should not render result sections")
		}
	})
}

func TestJSONWriterWrite(t *testing.T) {
	t.Parallel()

	t.Run("produces decodable JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewJSONWriter(&buf)

		if _, err := writer.Write(completedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		var decoded model.RunReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.State != model.RunStateDone {
			t.Errorf("state = %q, want done", decoded.State)
		}
		if len(decoded.Records) != 3 {
			t.Errorf("records = %d, want 3", len(decoded.Records))
		}
	})

	t.Run("pretty print indents the output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := writer.Write(completedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("pretty output should be indented")
		}
	})
}

func TestMarkdownWriterWrite(t *testing.T) {
	t.Parallel()

	t.Run("renders tables and the outcome chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewMarkdownWriter(&buf)

		if _, err := writer.Write(completedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Headline Report",
			"## Articles",
			"The future of work",
			"mermaid",
			"## Word Frequency",
			"future",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("aborted run renders a caution alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := NewMarkdownWriter(&buf)

		if _, err := writer.Write(abortedReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "[!CAUTION]") {
			t.Error("output should carry a caution alert")
		}
		if strings.Contains(out, "## Word Frequency") {
			t.Error("aborted output should not render result sections")
		}
	})
}

func TestMultiWriterWrite(t *testing.T) {
	t.Parallel()

	t.Run("writes to every underlying writer", func(t *testing.T) {
		t.Parallel()

		var text, jsonBuf bytes.Buffer
		writer := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&jsonBuf))

		n, err := writer.Write(completedReport())
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if n != text.Len()+jsonBuf.Len() {
			t.Errorf("n = %d, want %d", n, text.Len()+jsonBuf.Len())
		}
		if text.Len() == 0 || jsonBuf.Len() == 0 {
			t.Error("both writers should receive output")
		}
	})
}
