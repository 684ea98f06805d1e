package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/headline/internal/assets"
	"github.com/nao1215/headline/internal/crawler"
	"github.com/nao1215/headline/internal/frequency"
	"github.com/nao1215/headline/internal/model"
	"github.com/nao1215/headline/internal/translate"
)

// extractor is the extraction dependency of ExtractStep.
type extractor interface {
	Extract(ctx context.Context, ref model.ArticleRef) model.ArticleRecord
}

// lister is the discovery dependency of ListStep.
type lister interface {
	List(ctx context.Context, sectionURL string, count int) ([]model.ArticleRef, error)
}

// ListStep discovers article references on the section page. It is the
// only step that can abort the run: without references there is nothing
// for the rest of the pipeline to work on.
type ListStep struct {
	lister lister
}

// NewListStep creates a ListStep backed by the given lister.
func NewListStep(l *crawler.Lister) *ListStep {
	return &ListStep{lister: l}
}

// Name implements Step.
func (s *ListStep) Name() string { return "list" }

// State implements Step.
func (s *ListStep) State() model.RunState { return model.RunStateListing }

// Do implements Step. A discovery failure comes back as a
// crawler.DiscoveryError and aborts the run.
func (s *ListStep) Do(ctx context.Context, report *model.RunReport) error {
	refs, err := s.lister.List(ctx, report.SectionURL, report.RequestedCount)
	if err != nil {
		return err
	}
	report.Refs = refs
	return nil
}

// ExtractStep fetches and extracts every discovered article with
// bounded concurrency. Each worker writes into its own slot so the
// record order always matches discovery order, whatever order the
// fetches complete in.
type ExtractStep struct {
	extractor   extractor
	assets      *assets.Fetcher
	concurrency int
}

// NewExtractStep creates an ExtractStep. assetFetcher may be nil to
// skip cover image downloads.
func NewExtractStep(e extractor, assetFetcher *assets.Fetcher, concurrency int) *ExtractStep {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ExtractStep{extractor: e, assets: assetFetcher, concurrency: concurrency}
}

// Name implements Step.
func (s *ExtractStep) Name() string { return "extract" }

// State implements Step.
func (s *ExtractStep) State() model.RunState { return model.RunStateExtracting }

// Do implements Step. Extraction failures live inside the records;
// the step itself fails only on context cancellation.
func (s *ExtractStep) Do(ctx context.Context, report *model.RunReport) error {
	records := make([]model.ArticleRecord, len(report.Refs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for i, ref := range report.Refs {
		i, ref := i, ref
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			records[i] = s.extractor.Extract(egCtx, ref)
			if s.assets != nil {
				s.assets.Fetch(egCtx, &records[i])
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	report.Records = records
	return nil
}

// TranslateStep translates every translatable record's title with
// bounded concurrency. It produces exactly one result per record:
// records that cannot be translated get an explicit skip so the report
// accounts for every article.
type TranslateStep struct {
	translator  translate.Translator
	concurrency int
}

// NewTranslateStep creates a TranslateStep.
func NewTranslateStep(t translate.Translator, concurrency int) *TranslateStep {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TranslateStep{translator: t, concurrency: concurrency}
}

// Name implements Step.
func (s *TranslateStep) Name() string { return "translate" }

// State implements Step.
func (s *TranslateStep) State() model.RunState { return model.RunStateTranslating }

// Do implements Step. A title that still fails after the translator's
// retries is marked failed and the run continues.
func (s *TranslateStep) Do(ctx context.Context, report *model.RunReport) error {
	results := make([]model.TranslationResult, len(report.Records))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for i := range report.Records {
		i := i
		record := &report.Records[i]
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			results[i] = s.translateOne(egCtx, record, report.SourceLang, report.TargetLang)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	report.Translations = results
	return nil
}

// translateOne builds the result for a single record.
func (s *TranslateStep) translateOne(ctx context.Context, record *model.ArticleRecord, sourceLang, targetLang string) model.TranslationResult {
	result := model.TranslationResult{SourceRef: record.SourceRef}

	switch {
	case record.Status != model.FetchStatusOK:
		result.Status = model.TranslationStatusSkipped
		result.Reason = model.ReasonNotExtracted
	case record.Title == "":
		result.Status = model.TranslationStatusSkipped
		result.Reason = model.ReasonEmptyTitle
	default:
		translated, err := s.translator.Translate(ctx, record.Title, sourceLang, targetLang)
		if err != nil {
			result.Status = model.TranslationStatusFailed
			result.Reason = err.Error()
			break
		}
		result.Status = model.TranslationStatusOK
		result.TranslatedTitle = translated
	}

	return result
}

// AnalyzeStep builds the word frequency table over the successfully
// translated titles.
type AnalyzeStep struct {
	analyzer *frequency.Analyzer
}

// NewAnalyzeStep creates an AnalyzeStep.
func NewAnalyzeStep(a *frequency.Analyzer) *AnalyzeStep {
	return &AnalyzeStep{analyzer: a}
}

// Name implements Step.
func (s *AnalyzeStep) Name() string { return "analyze" }

// State implements Step.
func (s *AnalyzeStep) State() model.RunState { return model.RunStateAnalyzing }

// Do implements Step. An empty title set yields an empty table, not an
// error.
func (s *AnalyzeStep) Do(_ context.Context, report *model.RunReport) error {
	report.Frequency = s.analyzer.Analyze(report.TranslatedTitles())
	return nil
}
