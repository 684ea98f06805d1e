package model

import "time"

// RunState is the pipeline state machine position.
// A run moves Init -> Listing -> Extracting -> Translating -> Analyzing
// -> Done. Aborted is terminal and reachable only from Listing: a fatal
// discovery failure is the single condition that prevents a run from
// reaching Done.
type RunState string

const (
	// RunStateInit is the state before any step has executed.
	RunStateInit RunState = "init"

	// RunStateListing means article discovery is in progress.
	RunStateListing RunState = "listing"

	// RunStateExtracting means per-article extraction is in progress.
	RunStateExtracting RunState = "extracting"

	// RunStateTranslating means title translation is in progress.
	RunStateTranslating RunState = "translating"

	// RunStateAnalyzing means frequency analysis is in progress.
	RunStateAnalyzing RunState = "analyzing"

	// RunStateDone is the normal terminal state.
	RunStateDone RunState = "done"

	// RunStateAborted is the terminal state after a fatal discovery
	// failure. Per-article and per-title failures never lead here.
	RunStateAborted RunState = "aborted"
)

// WordCount is one row of the frequency table.
type WordCount struct {
	// Word is the normalized token.
	Word string `json:"word"`

	// Count is the number of occurrences across all translated titles.
	// Always at least 1.
	Count int `json:"count"`
}

// RunReport aggregates everything one pipeline run produced.
// It is created before the first step runs and filled in as steps
// complete. The frequency table is built once at the end of the run and
// is read-only afterwards.
type RunReport struct {
	// SectionURL is the section entry point this run processed.
	SectionURL string `json:"section_url"`

	// SourceLang and TargetLang are the configured language pair.
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`

	// RequestedCount is the configured article count N.
	// len(Records) is min(N, articles available on the section page).
	RequestedCount int `json:"requested_count"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`

	// State is the pipeline state machine position.
	State RunState `json:"state"`

	// Refs holds the discovered article references in page order.
	Refs []ArticleRef `json:"refs,omitempty"`

	// Records holds one entry per discovered article, in discovery
	// order regardless of extraction completion timing.
	Records []ArticleRecord `json:"records,omitempty"`

	// Translations holds one entry per record: an attempt, a failure,
	// or an explicit skip.
	Translations []TranslationResult `json:"translations,omitempty"`

	// Frequency is the ranked word frequency table over successfully
	// translated titles, sorted by count descending then word ascending.
	Frequency []WordCount `json:"frequency,omitempty"`

	// Error holds the fatal error for an aborted run.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRunReport creates a report in the Init state.
func NewRunReport(sectionURL string, requestedCount int, sourceLang, targetLang string) *RunReport {
	return &RunReport{
		SectionURL:     sectionURL,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		RequestedCount: requestedCount,
		StartedAt:      time.Now(),
		State:          RunStateInit,
	}
}

// TranslatedTitles returns the titles that were successfully translated,
// in record order. This is the frequency analyzer's input: failed and
// skipped translations are excluded.
func (r *RunReport) TranslatedTitles() []string {
	titles := make([]string, 0, len(r.Translations))
	for _, t := range r.Translations {
		if t.Status == TranslationStatusOK {
			titles = append(titles, t.TranslatedTitle)
		}
	}
	return titles
}

// ExtractedCount returns the number of fully extracted records.
func (r *RunReport) ExtractedCount() int {
	n := 0
	for i := range r.Records {
		if r.Records[i].Status == FetchStatusOK {
			n++
		}
	}
	return n
}

// ExtractionFailureCount returns the number of records that did not
// complete extraction, partial failures included.
func (r *RunReport) ExtractionFailureCount() int {
	return len(r.Records) - r.ExtractedCount()
}

// TranslatedCount returns the number of successful translations.
func (r *RunReport) TranslatedCount() int {
	n := 0
	for _, t := range r.Translations {
		if t.Status == TranslationStatusOK {
			n++
		}
	}
	return n
}

// TranslationFailureCount returns the number of translations that
// failed after exhausting retries. Skips are not failures.
func (r *RunReport) TranslationFailureCount() int {
	n := 0
	for _, t := range r.Translations {
		if t.Status == TranslationStatusFailed {
			n++
		}
	}
	return n
}

// AssetFailureCount returns the number of cover images that could not
// be fetched or stored.
func (r *RunReport) AssetFailureCount() int {
	n := 0
	for i := range r.Records {
		if r.Records[i].AssetFailure != "" {
			n++
		}
	}
	return n
}

// TopWords returns up to n leading rows of the frequency table.
func (r *RunReport) TopWords(n int) []WordCount {
	if n > len(r.Frequency) {
		n = len(r.Frequency)
	}
	return r.Frequency[:n]
}
