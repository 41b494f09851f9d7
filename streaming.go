package cardstream

import "time"

// Stage constants. Exactly one stage is live per engine instance; terminal
// stages are sticky until the next Start.
const (
	StageIdle      Stage = "idle"
	StageThinking  Stage = "thinking"
	StageStreaming Stage = "streaming"
	StageComplete  Stage = "complete"
	StageAborted   Stage = "aborted"
	StageError     Stage = "error"
)

// Stage identifies where the engine is in the streaming timeline.
type Stage string

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// IsTerminal returns true for complete, aborted and error
func (s Stage) IsTerminal() bool {
	switch s {
	case StageComplete, StageAborted, StageError:
		return true
	default:
		return false
	}
}

// StreamingState is an immutable snapshot of the engine's timeline. It is
// replaced, never mutated in place, on every transition.
type StreamingState struct {
	// RunID identifies the Start invocation this state belongs to, so
	// subscribers can attribute snapshots across superseding runs.
	RunID string

	// Stage is the current timeline stage
	Stage Stage

	// Progress is the fraction of tokens emitted, in [0,1]
	Progress float64

	// Active is true while a run is in thinking or streaming
	Active bool

	// Err carries the failure that drove the error stage (nil otherwise)
	Err error
}

// CardUpdate is emitted once per tick, or exactly once in instant mode.
// Card is always a structurally valid CardDocument, even mid-stream.
type CardUpdate struct {
	// RunID identifies the Start invocation this update belongs to
	RunID string

	// Card is a snapshot the subscriber owns; the engine keeps no reference
	Card *CardDocument

	// Stage at emission time (streaming or complete)
	Stage Stage

	// Progress is the fraction of tokens emitted, in [0,1]
	Progress float64
}

// Config holds the streaming pace for one run. Set once per Start call and
// immutable during that run.
type Config struct {
	// TokensPerSecond is the emission rate. Must be positive.
	TokensPerSecond float64

	// ThinkingDelay is how long the engine holds in the thinking stage
	// before the first token, simulating "waiting for first token".
	// Must be non-negative. Zero skips the thinking stage.
	ThinkingDelay time.Duration
}

// DefaultConfig returns the pace used when nothing else is configured:
// a comfortable reading speed with a short thinking pause.
func DefaultConfig() Config {
	return Config{
		TokensPerSecond: 40,
		ThinkingDelay:   600 * time.Millisecond,
	}
}

// Validate checks the config ranges
func (c Config) Validate() error {
	if c.TokensPerSecond <= 0 {
		return &ConfigError{
			Field:  "tokens_per_second",
			Value:  c.TokensPerSecond,
			Reason: "must be positive",
			Err:    ErrInvalidConfig,
		}
	}
	if c.ThinkingDelay < 0 {
		return &ConfigError{
			Field:  "thinking_delay",
			Value:  c.ThinkingDelay,
			Reason: "must be non-negative",
			Err:    ErrInvalidConfig,
		}
	}
	return nil
}

// tickPeriod converts the rate into a scheduler period. Clamped so extreme
// rates still arm a valid ticker.
func (c Config) tickPeriod() time.Duration {
	period := time.Duration(float64(time.Second) / c.TokensPerSecond)
	if period <= 0 {
		period = time.Nanosecond
	}
	return period
}

// StartOptions customizes a single Start call.
type StartOptions struct {
	// Instant collapses the whole timeline into one synchronous emission
	// with stage complete.
	Instant bool

	// Config overrides the engine defaults for this run only
	Config *Config
}
