package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/headline/internal/fetch"
	"github.com/nao1215/headline/internal/model"
)

// whitespaceRe collapses runs of whitespace in extracted body text.
var whitespaceRe = regexp.MustCompile(`\s+`)

// bodySelectors are tried in order when the page has no <article>
// container with paragraphs. The class wildcard catches the many CMSes
// that name their body container some variant of "article".
var bodySelectors = []string{
	"div[itemprop='articleBody']",
	"div[class*='article']",
	"main",
}

// Extractor fetches article pages and extracts normalized records.
type Extractor struct {
	// fetcher retrieves article pages. Retry policy lives in the
	// fetcher, not here: structural extraction problems are never
	// retried.
	fetcher fetch.PageFetcher

	// excerptLen is the excerpt cut in runes.
	excerptLen int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithExcerptLength sets the excerpt cut in Unicode characters.
func WithExcerptLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.excerptLen = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor using the given page fetcher.
func NewExtractor(fetcher fetch.PageFetcher, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:    fetcher,
		excerptLen: 500,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Extract fetches one article and builds its record. It never returns
// an error: transport failures and missing titles are recorded in the
// record's status so the caller can aggregate them without branching.
func (e *Extractor) Extract(ctx context.Context, ref model.ArticleRef) model.ArticleRecord {
	record := model.ArticleRecord{SourceRef: ref}

	body, err := e.fetcher.FetchPage(ctx, ref.String())
	if err != nil {
		e.logger.Warn("article fetch failed", "url", ref, "error", err)
		record.Status = model.FetchStatusFailed
		record.Reason = err.Error()
		return record
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		record.Status = model.FetchStatusFailed
		record.Reason = err.Error()
		return record
	}

	record.Title = extractTitle(doc)
	record.Excerpt = e.extractExcerpt(doc)
	record.ImageRef = extractImageRef(doc, ref.String())

	if record.Title == "" {
		record.Status = model.FetchStatusPartial
		record.Reason = model.ReasonNoTitle
		e.logger.Warn("no title element found", "url", ref)
		return record
	}

	record.Status = model.FetchStatusOK

	e.logger.Debug("extracted article",
		"url", ref,
		"title", record.Title,
		"excerpt", record.Excerpt,
		"image", record.ImageRef,
	)

	return record
}

// extractTitle runs the title cascade: social meta tags first because
// they carry the editorial headline without site suffixes, then
// headings, then JSON-LD, then the document title as a last resort.
func extractTitle(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}
	if content, ok := doc.Find("meta[name='twitter:title']").First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}

	if title := strings.TrimSpace(doc.Find("article h1").First().Text()); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}

	if title := titleFromJSONLD(doc); title != "" {
		return title
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

// titleFromJSONLD pulls a headline out of ld+json blocks. The payload
// may be a single object, a list of objects, or nest the headline under
// mainEntityOfPage.
func titleFromJSONLD(doc *goquery.Document) string {
	var title string

	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := s.Text()
		if raw == "" {
			return true
		}

		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return true
		}

		title = headlineFrom(payload)
		return title == ""
	})

	return title
}

// headlineFrom walks a decoded ld+json value looking for a headline.
func headlineFrom(payload any) string {
	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			if h := headlineFrom(item); h != "" {
				return h
			}
		}
	case map[string]any:
		if h, ok := v["headline"].(string); ok && strings.TrimSpace(h) != "" {
			return strings.TrimSpace(h)
		}
		if main, ok := v["mainEntityOfPage"].(map[string]any); ok {
			if h, ok := main["headline"].(string); ok && strings.TrimSpace(h) != "" {
				return strings.TrimSpace(h)
			}
		}
	}
	return ""
}

// extractExcerpt concatenates visible body text in document order and
// cuts it to the configured rune count. The cut is a hard length cut on
// rune boundaries: no word snapping, never mid-codepoint.
func (e *Extractor) extractExcerpt(doc *goquery.Document) string {
	var parts []string

	doc.Find("article p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, " ")

	if text == "" {
		for _, sel := range bodySelectors {
			if node := doc.Find(sel).First(); node.Length() > 0 {
				text = node.Text()
				if strings.TrimSpace(text) != "" {
					break
				}
			}
		}
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > e.excerptLen {
		return string(runes[:e.excerptLen])
	}
	return text
}

// extractImageRef returns the first qualifying cover image reference.
// Preference order: og:image meta, then the first image inside the
// article body. Relative references are resolved against the article
// URL. Absence is not an error.
func extractImageRef(doc *goquery.Document, articleURL string) string {
	if content, ok := doc.Find("meta[property='og:image']").First().Attr("content"); ok {
		if ref := strings.TrimSpace(content); ref != "" {
			return resolveRef(articleURL, ref)
		}
	}

	if src, ok := doc.Find("article img").First().Attr("src"); ok {
		if ref := strings.TrimSpace(src); ref != "" {
			return resolveRef(articleURL, ref)
		}
	}

	return ""
}

// resolveRef resolves a possibly relative image reference.
func resolveRef(baseURL, ref string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
