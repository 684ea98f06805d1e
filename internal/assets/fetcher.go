package assets

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/headline/internal/fetch"
	"github.com/nao1215/headline/internal/model"
)

// Fetcher downloads cover images referenced by article records.
type Fetcher struct {
	binary fetch.BinaryFetcher
	store  Store
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetcherLogger sets a custom logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher that downloads through binary and
// persists through store.
func NewFetcher(binary fetch.BinaryFetcher, store Store, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		binary: binary,
		store:  store,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch downloads the record's cover image, stores it, and records any
// EXIF metadata found in it. A record without an image reference is
// left untouched. Failures set AssetFailure and never propagate: a
// broken image must not degrade an otherwise successful extraction.
func (f *Fetcher) Fetch(ctx context.Context, record *model.ArticleRecord) {
	if record.ImageRef == "" {
		return
	}

	data, contentType, err := f.binary.FetchBinary(ctx, record.ImageRef)
	if err != nil {
		f.logger.Warn("image download failed", "url", record.ImageRef, "error", err)
		record.AssetFailure = err.Error()
		return
	}

	dest, err := f.store.Save(ctx, record.ImageRef, data)
	if err != nil {
		f.logger.Warn("image store failed", "url", record.ImageRef, "error", err)
		record.AssetFailure = err.Error()
		return
	}
	record.ImagePath = dest

	if isJPEG(contentType, data) {
		record.ImageMeta = InspectEXIF(data)
	}

	f.logger.Debug("stored cover image", "url", record.ImageRef, "path", dest)
}

// isJPEG reports whether the payload looks like JPEG, by declared
// content type or by magic bytes when the server lies or stays silent.
func isJPEG(contentType string, data []byte) bool {
	if strings.Contains(contentType, "image/jpeg") || strings.Contains(contentType, "image/jpg") {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8
}
