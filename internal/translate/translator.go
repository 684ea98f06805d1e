package translate

import (
	"context"
	"errors"
)

var (
	// ErrEmptyText is returned when there is nothing to translate.
	ErrEmptyText = errors.New("translate: empty text")
	// ErrBadResponse is returned when the service replies with a payload
	// that does not contain a translation.
	ErrBadResponse = errors.New("translate: malformed service response")
)

// Translator converts text from one language to another.
type Translator interface {
	// Translate returns text converted from sourceLang to targetLang.
	// Language codes are ISO 639-1 (e.g. "es", "en").
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
