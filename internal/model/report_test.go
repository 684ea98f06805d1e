package model

import "testing"

// TestNewRunReport tests report construction.
func TestNewRunReport(t *testing.T) {
	t.Parallel()

	r := NewRunReport("https://example.com/opinion/", 5, "es", "en")

	if r.State != RunStateInit {
		t.Errorf("expected state %q, got %q", RunStateInit, r.State)
	}
	if r.RequestedCount != 5 {
		t.Errorf("expected requested count 5, got %d", r.RequestedCount)
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

// TestRunReportTranslatedTitles tests that only successful translations
// feed the analyzer input.
func TestRunReportTranslatedTitles(t *testing.T) {
	t.Parallel()

	r := &RunReport{
		Translations: []TranslationResult{
			{SourceRef: "a", TranslatedTitle: "The future of work", Status: TranslationStatusOK},
			{SourceRef: "b", Status: TranslationStatusFailed, Reason: "rate limited"},
			{SourceRef: "c", Status: TranslationStatusSkipped, Reason: ReasonEmptyTitle},
			{SourceRef: "d", TranslatedTitle: "The climate crisis", Status: TranslationStatusOK},
		},
	}

	titles := r.TranslatedTitles()
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d: %v", len(titles), titles)
	}
	if titles[0] != "The future of work" || titles[1] != "The climate crisis" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

// TestRunReportCounts tests the aggregate counters.
func TestRunReportCounts(t *testing.T) {
	t.Parallel()

	r := &RunReport{
		Records: []ArticleRecord{
			{SourceRef: "a", Title: "uno", Status: FetchStatusOK},
			{SourceRef: "b", Status: FetchStatusPartial, Reason: ReasonNoTitle},
			{SourceRef: "c", Status: FetchStatusFailed, Reason: "timeout"},
			{SourceRef: "d", Title: "dos", Status: FetchStatusOK, AssetFailure: "not found"},
		},
		Translations: []TranslationResult{
			{SourceRef: "a", TranslatedTitle: "one", Status: TranslationStatusOK},
			{SourceRef: "b", Status: TranslationStatusSkipped, Reason: ReasonNoTitle},
			{SourceRef: "c", Status: TranslationStatusSkipped, Reason: ReasonNotExtracted},
			{SourceRef: "d", Status: TranslationStatusFailed, Reason: "timeout"},
		},
	}

	if got := r.ExtractedCount(); got != 2 {
		t.Errorf("ExtractedCount = %d, want 2", got)
	}
	if got := r.ExtractionFailureCount(); got != 2 {
		t.Errorf("ExtractionFailureCount = %d, want 2", got)
	}
	if got := r.TranslatedCount(); got != 1 {
		t.Errorf("TranslatedCount = %d, want 1", got)
	}
	if got := r.TranslationFailureCount(); got != 1 {
		t.Errorf("TranslationFailureCount = %d, want 1", got)
	}
	if got := r.AssetFailureCount(); got != 1 {
		t.Errorf("AssetFailureCount = %d, want 1", got)
	}
}

// TestArticleRecordTranslatable tests the translation eligibility rule.
func TestArticleRecordTranslatable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record ArticleRecord
		want   bool
	}{
		{
			name:   "ok with title",
			record: ArticleRecord{Title: "Hola", Status: FetchStatusOK},
			want:   true,
		},
		{
			name:   "ok with empty title",
			record: ArticleRecord{Status: FetchStatusOK},
			want:   false,
		},
		{
			name:   "partial failure",
			record: ArticleRecord{Status: FetchStatusPartial, Reason: ReasonNoTitle},
			want:   false,
		},
		{
			name:   "failed fetch",
			record: ArticleRecord{Title: "Hola", Status: FetchStatusFailed},
			want:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.record.Translatable(); got != tt.want {
				t.Errorf("Translatable() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRunReportTopWords tests the bounded frequency table view.
func TestRunReportTopWords(t *testing.T) {
	t.Parallel()

	r := &RunReport{
		Frequency: []WordCount{
			{Word: "crisis", Count: 3},
			{Word: "future", Count: 2},
			{Word: "work", Count: 1},
		},
	}

	if got := r.TopWords(2); len(got) != 2 || got[0].Word != "crisis" {
		t.Errorf("TopWords(2) = %v", got)
	}
	if got := r.TopWords(10); len(got) != 3 {
		t.Errorf("TopWords(10) returned %d rows, want 3", len(got))
	}
}

// TestImageMetaEmpty tests the empty check including nil receivers.
func TestImageMetaEmpty(t *testing.T) {
	t.Parallel()

	var m *ImageMeta
	if !m.Empty() {
		t.Error("nil ImageMeta should be empty")
	}
	if !(&ImageMeta{}).Empty() {
		t.Error("zero ImageMeta should be empty")
	}
	if (&ImageMeta{Artist: "AP"}).Empty() {
		t.Error("ImageMeta with artist should not be empty")
	}
}
