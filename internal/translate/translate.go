// Package translate provides machine translation of catalog text fields.
package translate

import "context"

// Translator translates a piece of text between the configured language pair.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Noop returns the input text unchanged. Used when translation is disabled
// and as a stand-in for tests.
type Noop struct{}

// Translate implements Translator.
func (Noop) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
