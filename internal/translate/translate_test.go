package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/headline/internal/fetch"
)

func TestGoogleTranslatorTranslate(t *testing.T) {
	t.Parallel()

	t.Run("decodes a segmented response", func(t *testing.T) {
		t.Parallel()

		var gotQuery atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.Query())
			_, _ = w.Write([]byte(`[[["The future ","El futuro ",null],["of work","del trabajo",null]],null,"es"]`))
		}))
		defer server.Close()

		translator := NewGoogleTranslator(5*time.Second, WithEndpoint(server.URL))

		translated, err := translator.Translate(context.Background(), "El futuro del trabajo", "es", "en")
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if translated != "The future of work" {
			t.Errorf("translated = %q, want %q", translated, "The future of work")
		}

		query := gotQuery.Load().(url.Values)
		if got := query.Get("sl"); got != "es" {
			t.Errorf("sl = %q, want es", got)
		}
		if got := query.Get("tl"); got != "en" {
			t.Errorf("tl = %q, want en", got)
		}
		if got := query.Get("q"); got != "El futuro del trabajo" {
			t.Errorf("q = %q", got)
		}
	})

	t.Run("rejects empty text before issuing a request", func(t *testing.T) {
		t.Parallel()

		translator := NewGoogleTranslator(time.Second)
		if _, err := translator.Translate(context.Background(), "  ", "es", "en"); !errors.Is(err, ErrEmptyText) {
			t.Errorf("error = %v, want ErrEmptyText", err)
		}
	})

	t.Run("malformed payload yields ErrBadResponse", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
		}))
		defer server.Close()

		translator := NewGoogleTranslator(time.Second, WithEndpoint(server.URL))
		if _, err := translator.Translate(context.Background(), "hola", "es", "en"); !errors.Is(err, ErrBadResponse) {
			t.Errorf("error = %v, want ErrBadResponse", err)
		}
	})

	t.Run("service errors carry the status code", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		translator := NewGoogleTranslator(time.Second, WithEndpoint(server.URL))
		_, err := translator.Translate(context.Background(), "hola", "es", "en")

		var statusErr *fetch.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("error = %v, want StatusError", err)
		}
		if !statusErr.Transient() {
			t.Error("429 should be transient")
		}
	})
}

// fakeTranslator fails a fixed number of times before succeeding.
type fakeTranslator struct {
	failures int
	err      error
	calls    int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "translated: " + text, nil
}

func TestRetryingTranslatorTranslate(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		inner := &fakeTranslator{
			failures: 2,
			err:      &fetch.StatusError{StatusCode: http.StatusServiceUnavailable, URL: "x"},
		}
		translator := NewRetryingTranslator(inner, WithMaxRetries(3), WithBackoff(time.Millisecond))

		translated, err := translator.Translate(context.Background(), "hola", "es", "en")
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if translated != "translated: hola" {
			t.Errorf("translated = %q", translated)
		}
		if inner.calls != 3 {
			t.Errorf("calls = %d, want 3", inner.calls)
		}
	})

	t.Run("does not retry structural failures", func(t *testing.T) {
		t.Parallel()

		inner := &fakeTranslator{failures: 10, err: ErrBadResponse}
		translator := NewRetryingTranslator(inner, WithMaxRetries(3), WithBackoff(time.Millisecond))

		if _, err := translator.Translate(context.Background(), "hola", "es", "en"); !errors.Is(err, ErrBadResponse) {
			t.Errorf("error = %v, want ErrBadResponse", err)
		}
		if inner.calls != 1 {
			t.Errorf("calls = %d, want 1", inner.calls)
		}
	})

	t.Run("returns the last transient error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		serviceErr := &fetch.StatusError{StatusCode: http.StatusInternalServerError, URL: "x"}
		inner := &fakeTranslator{failures: 10, err: serviceErr}
		translator := NewRetryingTranslator(inner, WithMaxRetries(2), WithBackoff(time.Millisecond))

		_, err := translator.Translate(context.Background(), "hola", "es", "en")
		if !errors.Is(err, serviceErr) {
			t.Errorf("error = %v, want last service error", err)
		}
		if inner.calls != 3 {
			t.Errorf("calls = %d, want 3", inner.calls)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		inner := &fakeTranslator{
			failures: 10,
			err:      &fetch.StatusError{StatusCode: http.StatusInternalServerError, URL: "x"},
		}
		translator := NewRetryingTranslator(inner, WithMaxRetries(5), WithBackoff(time.Hour))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := translator.Translate(ctx, "hola", "es", "en"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
