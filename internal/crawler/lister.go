package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/nao1215/headline/internal/fetch"
	"github.com/nao1215/headline/internal/model"
)

// defaultArticlePattern matches URL paths with an embedded publication
// date, the shape most news sites give individual articles
// (e.g. /opinion/2026-08-30/some-slug.html).
var defaultArticlePattern = regexp.MustCompile(`/\d{4}-\d{2}-\d{2}/`)

// Lister discovers article references on a section page.
type Lister struct {
	// fetcher retrieves the section page.
	fetcher fetch.PageFetcher

	// pattern must match an article URL path for the link to qualify.
	pattern *regexp.Regexp

	// sameHostOnly restricts candidates to the section's host.
	sameHostOnly bool

	// logger for structured logging.
	logger *slog.Logger
}

// ListerOption configures a Lister.
type ListerOption func(*Lister)

// WithArticlePattern replaces the article URL path pattern.
// An empty pattern string keeps the default dated-path pattern.
func WithArticlePattern(pattern string) ListerOption {
	return func(l *Lister) {
		if pattern == "" {
			return
		}
		if re, err := regexp.Compile(pattern); err == nil {
			l.pattern = re
		}
	}
}

// WithSameHostOnly controls whether candidates must share the section
// host. Enabled by default; disable only for sections that link out to
// sibling domains.
func WithSameHostOnly(same bool) ListerOption {
	return func(l *Lister) {
		l.sameHostOnly = same
	}
}

// WithListerLogger sets a custom logger.
func WithListerLogger(logger *slog.Logger) ListerOption {
	return func(l *Lister) {
		l.logger = logger
	}
}

// NewLister creates a Lister using the given page fetcher.
func NewLister(fetcher fetch.PageFetcher, opts ...ListerOption) *Lister {
	l := &Lister{
		fetcher:      fetcher,
		pattern:      defaultArticlePattern,
		sameHostOnly: true,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// List returns up to count distinct article references from the section
// page, in page order. It returns a DiscoveryError when the page cannot
// be fetched or yields zero qualifying links; both are fatal to the run.
func (l *Lister) List(ctx context.Context, sectionURL string, count int) ([]model.ArticleRef, error) {
	section, err := url.Parse(sectionURL)
	if err != nil {
		return nil, &DiscoveryError{SectionURL: sectionURL, Err: err}
	}

	body, err := l.fetcher.FetchPage(ctx, sectionURL)
	if err != nil {
		return nil, &DiscoveryError{SectionURL: sectionURL, Err: err}
	}

	parser, err := NewParser(sectionURL)
	if err != nil {
		return nil, &DiscoveryError{SectionURL: sectionURL, Err: err}
	}

	result, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &DiscoveryError{SectionURL: sectionURL, Err: err}
	}

	refs := make([]model.ArticleRef, 0, count)
	seen := make(map[string]bool)

	for _, link := range result.Links {
		canonical, ok := l.qualify(section, link)
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		refs = append(refs, model.ArticleRef(canonical))
		if len(refs) >= count {
			break
		}
	}

	if len(refs) == 0 {
		return nil, &DiscoveryError{SectionURL: sectionURL, Err: ErrNoArticles}
	}

	l.logger.Debug("discovered articles",
		"section", sectionURL,
		"found", len(refs),
		"requested", count,
	)

	return refs, nil
}

// qualify checks a link against the article pattern and host rule and
// returns its canonical form. Canonicalization lowercases scheme and
// host and strips query and fragment, so the same article reached via
// different tracking parameters deduplicates to one ref.
func (l *Lister) qualify(section *url.URL, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	if l.sameHostOnly && !strings.EqualFold(u.Hostname(), section.Hostname()) {
		return "", false
	}

	if !l.pattern.MatchString(u.Path) {
		return "", false
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), true
}
