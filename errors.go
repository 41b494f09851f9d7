package cardstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrInvalidConfig indicates a stream config failed validation.
	ErrInvalidConfig = errors.New("cardstream: invalid stream config")

	// ErrEmptySource indicates Start was called with empty or
	// whitespace-only source text.
	ErrEmptySource = errors.New("cardstream: empty source text")

	// ErrUnparsableSource indicates the source text cannot be reconstructed
	// into any JSON value, even by repair.
	ErrUnparsableSource = errors.New("cardstream: source text cannot be reconstructed")

	// ErrUnknownPreset indicates a preset name is not in the registry.
	ErrUnknownPreset = errors.New("cardstream: unknown preset")
)

// ConfigError represents an error in stream config validation.
type ConfigError struct {
	Field  string // The config field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrInvalidConfig)
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config field '%s' (value: %v): %s (%v)", e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("config field '%s' (value: %v): %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SourceError represents a problem with caller-supplied source text.
type SourceError struct {
	Source string // Where the text came from (source name or path)
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrEmptySource or ErrUnparsableSource)
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source '%s': %s (%v)", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("source '%s': %s", e.Source, e.Reason)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsInvalidConfig checks if an error came from config validation.
func IsInvalidConfig(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidConfig) {
		return true
	}

	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsSourceError checks if an error indicates bad source text. These errors
// are not retryable without different input.
func IsSourceError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrEmptySource) || errors.Is(err, ErrUnparsableSource) {
		return true
	}

	var sourceErr *SourceError
	return errors.As(err, &sourceErr)
}
