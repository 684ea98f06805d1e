package translate

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/headline/internal/fetch"
)

// RetryingTranslator decorates a Translator with retry on transient
// failures. Structural failures (malformed responses, empty input,
// non-transient status codes) are returned immediately.
type RetryingTranslator struct {
	inner      Translator
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
}

// RetryOption configures a RetryingTranslator.
type RetryOption func(*RetryingTranslator)

// WithMaxRetries sets the number of additional attempts after the first.
func WithMaxRetries(n int) RetryOption {
	return func(r *RetryingTranslator) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}

// WithBackoff sets the initial backoff. It doubles on each retry.
func WithBackoff(d time.Duration) RetryOption {
	return func(r *RetryingTranslator) {
		if d > 0 {
			r.backoff = d
		}
	}
}

// WithRetryLogger sets a custom logger.
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(r *RetryingTranslator) {
		r.logger = logger
	}
}

// NewRetryingTranslator wraps inner with retry behavior.
func NewRetryingTranslator(inner Translator, opts ...RetryOption) *RetryingTranslator {
	r := &RetryingTranslator{
		inner:      inner,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Translate implements Translator. A transient failure is retried up to
// maxRetries times with doubling backoff; context cancellation stops
// the loop immediately.
func (r *RetryingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			wait := r.backoff * (1 << uint(attempt-1))
			r.logger.Debug("retrying translation",
				"attempt", attempt,
				"wait", wait,
				"error", lastErr,
			)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		translated, err := r.inner.Translate(ctx, text, sourceLang, targetLang)
		if err == nil {
			return translated, nil
		}
		if !fetch.IsTransient(err) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}
