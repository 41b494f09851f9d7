package cardstream

import "time"

// StatsHook receives engine instrumentation callbacks. Implementations must
// be cheap and non-blocking: hooks fire on the scheduler goroutine with the
// engine lock held. The metrics subpackage provides a Prometheus-backed
// implementation.
type StatsHook interface {
	// RunStarted fires once per accepted Start call
	RunStarted(instant bool)

	// UpdateEmitted fires once per published CardUpdate
	UpdateEmitted(stage Stage)

	// ReconstructionMiss fires when a tick's prefix does not parse even
	// after repair and the previous snapshot is re-emitted
	ReconstructionMiss()

	// RunFinished fires when a run reaches a terminal stage
	RunFinished(stage Stage, elapsed time.Duration)
}

// nopStats is the default hook: all callbacks are no-ops.
type nopStats struct{}

func (nopStats) RunStarted(bool)                  {}
func (nopStats) UpdateEmitted(Stage)              {}
func (nopStats) ReconstructionMiss()              {}
func (nopStats) RunFinished(Stage, time.Duration) {}
