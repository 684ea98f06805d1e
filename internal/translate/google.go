package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/headline/internal/fetch"
)

// defaultEndpoint is the unauthenticated Google Translate web endpoint.
const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator translates text through the Google Translate web
// endpoint. It needs no API key; the endpoint answers the same requests
// the web client issues.
type GoogleTranslator struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    *slog.Logger
}

// GoogleOption configures a GoogleTranslator.
type GoogleOption func(*GoogleTranslator)

// WithEndpoint overrides the service endpoint. Used by tests.
func WithEndpoint(endpoint string) GoogleOption {
	return func(g *GoogleTranslator) {
		if endpoint != "" {
			g.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(g *GoogleTranslator) {
		if client != nil {
			g.client = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent to the service.
func WithUserAgent(ua string) GoogleOption {
	return func(g *GoogleTranslator) {
		if ua != "" {
			g.userAgent = ua
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) GoogleOption {
	return func(g *GoogleTranslator) {
		g.logger = logger
	}
}

// NewGoogleTranslator creates a GoogleTranslator with the given request
// timeout.
func NewGoogleTranslator(timeout time.Duration, opts ...GoogleOption) *GoogleTranslator {
	g := &GoogleTranslator{
		client:    &http.Client{Timeout: timeout},
		endpoint:  defaultEndpoint,
		userAgent: "headline/1.0",
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	return g
}

// Translate implements Translator.
func (g *GoogleTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", sourceLang)
	query.Set("tl", targetLang)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("translate: build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request %q: %w", text, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &fetch.StatusError{StatusCode: resp.StatusCode, URL: g.endpoint}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("translate: read response: %w", err)
	}

	translated, err := decodeResponse(body)
	if err != nil {
		return "", err
	}

	g.logger.Debug("translated title", "source", text, "translated", translated)

	return translated, nil
}

// decodeResponse extracts the translated text from the gtx payload. The
// payload is deeply nested JSON arrays; segment texts live at
// payload[0][i][0] and are concatenated to form the full translation.
func decodeResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadResponse, err)
	}
	if len(payload) == 0 {
		return "", ErrBadResponse
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", ErrBadResponse
	}

	var builder strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			builder.WriteString(text)
		}
	}

	translated := strings.TrimSpace(builder.String())
	if translated == "" {
		return "", ErrBadResponse
	}
	return translated, nil
}
