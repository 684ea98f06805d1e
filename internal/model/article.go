package model

// ArticleRef is an opaque locator for one discovered article.
// It is produced by the section lister and consumed exactly once
// by the extractor.
type ArticleRef string

// String returns the underlying URL.
func (r ArticleRef) String() string {
	return string(r)
}

// FetchStatus describes the outcome of extracting one article.
type FetchStatus string

const (
	// FetchStatusOK means the article was fetched and all mandatory
	// fields were extracted.
	FetchStatusOK FetchStatus = "ok"

	// FetchStatusPartial means the article was fetched but a mandatory
	// field is missing. The record stays in the report for auditability
	// but is excluded from translation and frequency analysis.
	FetchStatusPartial FetchStatus = "partial_failure"

	// FetchStatusFailed means the article page could not be fetched
	// after exhausting retries. The record is excluded from all
	// remaining pipeline stages.
	FetchStatusFailed FetchStatus = "failed"
)

// Failure reasons recorded on article records and translation results.
const (
	// ReasonNoTitle marks a record whose page had no recognizable
	// title element.
	ReasonNoTitle = "no-title"

	// ReasonEmptyTitle marks a translation that was skipped because
	// the record's title is empty.
	ReasonEmptyTitle = "empty-title"

	// ReasonNotExtracted marks a translation that was skipped because
	// the record never completed extraction.
	ReasonNotExtracted = "not-extracted"
)

// ArticleRecord is the normalized form of one extracted article.
// Records are created by the extractor and owned by the run report for
// the duration of the run. After creation only the translation fields
// are attached; nothing else is mutated.
type ArticleRecord struct {
	// SourceRef is the article URL this record was extracted from.
	SourceRef ArticleRef `json:"source_ref"`

	// Title is the extracted headline in the source language.
	// Empty when Status is FetchStatusPartial with ReasonNoTitle.
	Title string `json:"title"`

	// Excerpt is the leading slice of the article's visible body text.
	// Truncated to the configured rune count, never mid-codepoint.
	Excerpt string `json:"excerpt"`

	// ImageRef is the cover image URL, if one was found.
	// Absence is not an error.
	ImageRef string `json:"image_ref,omitempty"`

	// ImagePath is where the asset fetcher stored the cover image.
	// Empty if the image was not fetched or storing failed.
	ImagePath string `json:"image_path,omitempty"`

	// ImageMeta holds EXIF metadata extracted from the stored cover
	// image. Nil for non-EXIF formats or stripped images, which is the
	// common case on the web.
	ImageMeta *ImageMeta `json:"image_meta,omitempty"`

	// AssetFailure records why the cover image could not be fetched or
	// stored. Asset failures are cosmetic and never affect Status.
	AssetFailure string `json:"asset_failure,omitempty"`

	// Status is the extraction outcome.
	Status FetchStatus `json:"status"`

	// Reason explains a non-OK Status.
	Reason string `json:"reason,omitempty"`
}

// Translatable reports whether this record should be handed to the
// translator. Only fully extracted records with a non-empty title
// qualify.
func (r *ArticleRecord) Translatable() bool {
	return r.Status == FetchStatusOK && r.Title != ""
}

// ImageMeta is EXIF metadata read from a stored cover image.
type ImageMeta struct {
	// Artist is the EXIF Artist or Author tag, often a photographer
	// credit on press images.
	Artist string `json:"artist,omitempty"`

	// Software is the tool that produced or edited the image.
	Software string `json:"software,omitempty"`

	// CameraModel is the EXIF Model tag.
	CameraModel string `json:"camera_model,omitempty"`

	// CapturedAt is the raw DateTimeOriginal tag value.
	CapturedAt string `json:"captured_at,omitempty"`
}

// Empty reports whether no tag of interest was present.
func (m *ImageMeta) Empty() bool {
	return m == nil || (m.Artist == "" && m.Software == "" && m.CameraModel == "" && m.CapturedAt == "")
}

// TranslationStatus describes the outcome of one translation attempt.
type TranslationStatus string

const (
	// TranslationStatusOK means the title was translated.
	TranslationStatusOK TranslationStatus = "ok"

	// TranslationStatusFailed means the translation service failed
	// after exhausting retries. The title is excluded from frequency
	// analysis.
	TranslationStatusFailed TranslationStatus = "failed"

	// TranslationStatusSkipped means no translation was attempted,
	// either because the title is empty or the record never completed
	// extraction.
	TranslationStatusSkipped TranslationStatus = "skipped"
)

// TranslationResult is the outcome of translating one record's title.
// There is exactly one result per record in a completed run.
type TranslationResult struct {
	// SourceRef identifies the article record this result belongs to.
	SourceRef ArticleRef `json:"source_ref"`

	// TranslatedTitle is the title in the target language.
	// Empty unless Status is TranslationStatusOK.
	TranslatedTitle string `json:"translated_title,omitempty"`

	// Status is the translation outcome.
	Status TranslationStatus `json:"status"`

	// Reason explains a failed or skipped translation.
	Reason string `json:"reason,omitempty"`
}
