package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/headline/internal/model"
)

// stubFetcher returns fixed page bytes keyed by URL.
type stubFetcher struct {
	pages map[string][]byte
	err   error
}

func (s *stubFetcher) FetchPage(_ context.Context, pageURL string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	body, ok := s.pages[pageURL]
	if !ok {
		return nil, errors.New("not found: " + pageURL)
	}
	return body, nil
}

func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	t.Run("prefers og:title over headings and document title", func(t *testing.T) {
		t.Parallel()

		page := `<html><head>
			<title>Site Title | Publisher</title>
			<meta property="og:title" content="Editorial Headline">
			<meta name="twitter:title" content="Twitter Headline">
		</head><body><article><h1>Body Headline</h1><p>First paragraph.</p></article></body></html>`

		record := extractFromPage(t, page)
		if record.Status != model.FetchStatusOK {
			t.Fatalf("status = %q, want %q", record.Status, model.FetchStatusOK)
		}
		if record.Title != "Editorial Headline" {
			t.Errorf("title = %q, want %q", record.Title, "Editorial Headline")
		}
	})

	t.Run("falls back through the title cascade", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			page string
			want string
		}{
			{
				name: "twitter title when og:title is absent",
				page: `<html><head><meta name="twitter:title" content="TW Title"></head><body><h1>H1 Title</h1></body></html>`,
				want: "TW Title",
			},
			{
				name: "article h1 before bare h1",
				page: `<html><body><h1>Outer</h1><article><h1>Inner</h1></article></body></html>`,
				want: "Inner",
			},
			{
				name: "bare h1",
				page: `<html><body><h1>  Only Heading  </h1></body></html>`,
				want: "Only Heading",
			},
			{
				name: "json-ld headline",
				page: `<html><head><script type="application/ld+json">{"@type":"NewsArticle","headline":"LD Headline"}</script></head><body><p>x</p></body></html>`,
				want: "LD Headline",
			},
			{
				name: "json-ld list payload",
				page: `<html><head><script type="application/ld+json">[{"@type":"Org"},{"headline":"Listed Headline"}]</script></head><body><p>x</p></body></html>`,
				want: "Listed Headline",
			},
			{
				name: "document title last",
				page: `<html><head><title>Doc Title</title></head><body><p>x</p></body></html>`,
				want: "Doc Title",
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				record := extractFromPage(t, tt.page)
				if record.Title != tt.want {
					t.Errorf("title = %q, want %q", record.Title, tt.want)
				}
			})
		}
	})

	t.Run("joins article paragraphs and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1>T</h1><article>
			<p>First   sentence.</p>
			<p>
				Second
				sentence.
			</p>
			<p></p>
		</article></body></html>`

		record := extractFromPage(t, page)
		want := "First sentence. Second sentence."
		if record.Excerpt != want {
			t.Errorf("excerpt = %q, want %q", record.Excerpt, want)
		}
	})

	t.Run("falls back to body container selectors", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1>T</h1><div itemprop="articleBody">Body   text here.</div></body></html>`

		record := extractFromPage(t, page)
		if record.Excerpt != "Body text here." {
			t.Errorf("excerpt = %q, want %q", record.Excerpt, "Body text here.")
		}
	})

	t.Run("cuts excerpt on rune boundaries", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("ñ", 30)
		page := `<html><body><h1>T</h1><article><p>` + body + `</p></article></body></html>`

		fetcher := &stubFetcher{pages: map[string][]byte{"https://example.com/a": []byte(page)}}
		extractor := NewExtractor(fetcher, WithExcerptLength(10))

		record := extractor.Extract(context.Background(), model.ArticleRef("https://example.com/a"))
		if got := []rune(record.Excerpt); len(got) != 10 {
			t.Errorf("excerpt rune length = %d, want 10", len(got))
		}
		if record.Excerpt != strings.Repeat("ñ", 10) {
			t.Errorf("excerpt = %q", record.Excerpt)
		}
	})

	t.Run("resolves relative image reference against article URL", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1>T</h1><article><img src="/media/cover.jpg"><p>x</p></article></body></html>`

		record := extractFromPage(t, page)
		want := "https://example.com/media/cover.jpg"
		if record.ImageRef != want {
			t.Errorf("image = %q, want %q", record.ImageRef, want)
		}
	})

	t.Run("prefers og:image over inline image", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><meta property="og:image" content="https://cdn.example.com/og.jpg"></head>
			<body><h1>T</h1><article><img src="/inline.jpg"></article></body></html>`

		record := extractFromPage(t, page)
		if record.ImageRef != "https://cdn.example.com/og.jpg" {
			t.Errorf("image = %q, want og:image", record.ImageRef)
		}
	})

	t.Run("missing title yields partial failure", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><article><p>Body with no headline.</p></article></body></html>`

		record := extractFromPage(t, page)
		if record.Status != model.FetchStatusPartial {
			t.Errorf("status = %q, want %q", record.Status, model.FetchStatusPartial)
		}
		if record.Reason != model.ReasonNoTitle {
			t.Errorf("reason = %q, want %q", record.Reason, model.ReasonNoTitle)
		}
		if record.Excerpt == "" {
			t.Error("excerpt should still be extracted without a title")
		}
	})

	t.Run("fetch failure yields failed status", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{err: errors.New("connection refused")}
		extractor := NewExtractor(fetcher)

		record := extractor.Extract(context.Background(), model.ArticleRef("https://example.com/a"))
		if record.Status != model.FetchStatusFailed {
			t.Errorf("status = %q, want %q", record.Status, model.FetchStatusFailed)
		}
		if record.SourceRef != model.ArticleRef("https://example.com/a") {
			t.Errorf("source ref = %q, want original ref", record.SourceRef)
		}
	})
}

// extractFromPage runs one extraction against a fixed page served at a
// canonical test URL.
func extractFromPage(t *testing.T, page string) model.ArticleRecord {
	t.Helper()

	fetcher := &stubFetcher{pages: map[string][]byte{"https://example.com/a": []byte(page)}}
	extractor := NewExtractor(fetcher)
	return extractor.Extract(context.Background(), model.ArticleRef("https://example.com/a"))
}
