// Package static provides a card source backed by fixed text, the way the
// documentation app serves cards from bundled assets.
package static

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	cardstream "github.com/haowjy/cardstream-go"
)

// Source serves one fixed card payload.
type Source struct {
	text string
}

// NewFromString creates a source over in-memory card JSON. The text is not
// validated here: feeding malformed text to the engine is a supported path
// (it surfaces as the error stage), and tests rely on it.
func NewFromString(text string) *Source {
	return &Source{text: text}
}

// NewFromFile reads card JSON from a file. Unlike NewFromString this
// validates up front, because a bad asset path or corrupted file is a
// deployment mistake worth failing loudly on.
func NewFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, &cardstream.SourceError{
			Source: path,
			Reason: "file is not valid JSON",
			Err:    cardstream.ErrUnparsableSource,
		}
	}
	return &Source{text: string(data)}, nil
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return "static"
}

// CardJSON returns the fixed payload.
func (s *Source) CardJSON(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, nil
}
