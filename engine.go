package cardstream

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine drives the progressive card-streaming timeline. One engine
// instance owns one run at a time:
//
//	idle → thinking → streaming → complete
//	                            → aborted (explicit Stop)
//	                            → error   (empty or unreconstructable source)
//
// Terminal stages are sticky until the next Start. Calling Start while a
// run is active implicitly stops it first; ticks scheduled by a superseded
// run are dropped via a run-generation counter, so no update is ever
// attributable to a stale run after Start or Stop returns.
//
// Subscribers are notified synchronously from the scheduler goroutine with
// the engine lock held. Callbacks must return quickly and must not call
// back into the engine; hand the snapshot off to your own goroutine or
// channel if you need to.
type Engine struct {
	mu         sync.Mutex
	defaults   Config
	stats      StatsHook
	gen        uint64
	state      StreamingState
	snapshot   *CardDocument
	run        *run
	stateSubs  map[int]func(StreamingState)
	updateSubs map[int]func(CardUpdate)
	nextSub    int
}

// run is the mutable state of one Start invocation. The scheduler goroutine
// is its sole writer; everything is guarded by the engine lock.
type run struct {
	gen     uint64
	id      string
	source  string
	tokens  []Token
	cfg     Config
	cursor  int
	last    *CardDocument
	started time.Time
	stop    chan struct{}
	stopped bool
}

// NewEngine creates an idle engine with DefaultConfig defaults.
func NewEngine() *Engine {
	return &Engine{
		defaults:   DefaultConfig(),
		stats:      nopStats{},
		state:      StreamingState{Stage: StageIdle},
		snapshot:   emptyCard(),
		stateSubs:  make(map[int]func(StreamingState)),
		updateSubs: make(map[int]func(CardUpdate)),
	}
}

// Configure sets the defaults used by subsequent Start calls that do not
// override them. The active run, if any, keeps its own config.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaults = cfg
	return nil
}

// ConfigurePreset sets the defaults from a named preset in the registry.
func (e *Engine) ConfigurePreset(name string) error {
	cfg, err := GetPreset(name)
	if err != nil {
		return err
	}
	return e.Configure(cfg)
}

// SetStatsHook installs an instrumentation hook. Passing nil restores the
// no-op default.
func (e *Engine) SetStatsHook(h StatsHook) {
	if h == nil {
		h = nopStats{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = h
}

// State returns the latest StreamingState snapshot.
func (e *Engine) State() StreamingState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns a copy of the latest card document. Always a valid
// document; before the first run it is the empty-sections card.
func (e *Engine) Snapshot() *CardDocument {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Clone()
}

// SubscribeState registers a state-change callback and returns a function
// that cancels the subscription.
func (e *Engine) SubscribeState(fn func(StreamingState)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.stateSubs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.stateSubs, id)
		e.mu.Unlock()
	}
}

// SubscribeUpdates registers a card-update callback and returns a function
// that cancels the subscription.
func (e *Engine) SubscribeUpdates(fn func(CardUpdate)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.updateSubs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.updateSubs, id)
		e.mu.Unlock()
	}
}

// Start begins streaming the given source text. A run already in flight is
// stopped first. Config problems are returned as an error; source problems
// (empty or unreconstructable text) surface through the error stage on the
// state stream instead, so render layers have a single failure affordance.
func (e *Engine) Start(source string, opts *StartOptions) error {
	if opts == nil {
		opts = &StartOptions{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.defaults
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.stopLocked()
	e.gen++
	runID := uuid.NewString()

	if strings.TrimSpace(source) == "" {
		e.snapshot = emptyCard()
		e.publishStateLocked(StreamingState{RunID: runID, Stage: StageError, Err: ErrEmptySource})
		return nil
	}

	// One reconstruction of the full text up front: a source that cannot
	// be repaired at all would fail every tick, so fail the run before the
	// first one.
	full, ok := Reconstruct(source)
	if !ok {
		e.snapshot = emptyCard()
		e.publishStateLocked(StreamingState{RunID: runID, Stage: StageError, Err: ErrUnparsableSource})
		return nil
	}

	e.stats.RunStarted(opts.Instant)

	if opts.Instant {
		doc := Normalize(full)
		e.snapshot = doc
		e.publishUpdateLocked(CardUpdate{RunID: runID, Card: doc.Clone(), Stage: StageComplete, Progress: 1})
		e.publishStateLocked(StreamingState{RunID: runID, Stage: StageComplete, Progress: 1})
		e.stats.UpdateEmitted(StageComplete)
		e.stats.RunFinished(StageComplete, 0)
		return nil
	}

	r := &run{
		gen:     e.gen,
		id:      runID,
		source:  source,
		tokens:  Tokenize(source),
		cfg:     cfg,
		last:    emptyCard(),
		started: time.Now(),
		stop:    make(chan struct{}),
	}
	e.run = r

	if cfg.ThinkingDelay > 0 {
		e.publishStateLocked(StreamingState{RunID: runID, Stage: StageThinking, Active: true})
	} else {
		e.publishStateLocked(StreamingState{RunID: runID, Stage: StageStreaming, Active: true})
	}

	go e.runLoop(r)
	return nil
}

// Stop cancels the active run and leaves the aborted stage. Safe to call
// when idle or already stopped; after Stop returns no further CardUpdate
// for the stopped run will be delivered.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	r := e.run
	if r == nil {
		return
	}
	e.gen++
	e.run = nil
	if !r.stopped {
		close(r.stop)
		r.stopped = true
	}
	e.publishStateLocked(StreamingState{RunID: r.id, Stage: StageAborted, Progress: e.state.Progress})
	e.stats.RunFinished(StageAborted, time.Since(r.started))
}

// runLoop is the run's scheduler: a single deferred thinking delay followed
// by a repeating tick timer. Both respond to the run's stop channel; every
// effect is additionally gated on the run generation under the engine lock,
// so a callback that already fired for a superseded run is a no-op.
func (e *Engine) runLoop(r *run) {
	if r.cfg.ThinkingDelay > 0 {
		timer := time.NewTimer(r.cfg.ThinkingDelay)
		select {
		case <-r.stop:
			timer.Stop()
			return
		case <-timer.C:
		}
		if !e.beginStreaming(r) {
			return
		}
	}

	ticker := time.NewTicker(r.cfg.tickPeriod())
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if !e.tick(r) {
				return
			}
		}
	}
}

func (e *Engine) beginStreaming(r *run) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r.gen != e.gen {
		return false
	}
	e.publishStateLocked(StreamingState{RunID: r.id, Stage: StageStreaming, Active: true})
	return true
}

// tick advances the cursor one token, reconstructs the current prefix and
// publishes the resulting snapshot. Returns false when the run is over.
func (e *Engine) tick(r *run) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r.gen != e.gen {
		return false
	}

	r.cursor++
	prefix := r.source[:r.tokens[r.cursor-1].End()]

	doc := r.last
	if repaired, ok := Reconstruct(prefix); ok {
		candidate := Normalize(repaired)
		// Never regress: a repaired shorter parse must not shrink the card.
		if candidate.contentWeight() >= r.last.contentWeight() {
			r.last = candidate
			doc = candidate
		}
	} else {
		e.stats.ReconstructionMiss()
	}

	if r.cursor == len(r.tokens) {
		// Final tick: the full source is valid by the Start check, so the
		// strict parse path applies and the document equals a direct parse.
		full, _ := Reconstruct(r.source)
		final := Normalize(full)
		r.last = final
		e.snapshot = final
		e.run = nil
		e.publishUpdateLocked(CardUpdate{RunID: r.id, Card: final.Clone(), Stage: StageComplete, Progress: 1})
		e.publishStateLocked(StreamingState{RunID: r.id, Stage: StageComplete, Progress: 1})
		e.stats.UpdateEmitted(StageComplete)
		e.stats.RunFinished(StageComplete, time.Since(r.started))
		return false
	}

	progress := float64(r.cursor) / float64(len(r.tokens))
	e.snapshot = doc
	e.publishUpdateLocked(CardUpdate{RunID: r.id, Card: doc.Clone(), Stage: StageStreaming, Progress: progress})
	e.publishStateLocked(StreamingState{RunID: r.id, Stage: StageStreaming, Progress: progress, Active: true})
	e.stats.UpdateEmitted(StageStreaming)
	return true
}

func (e *Engine) publishStateLocked(st StreamingState) {
	e.state = st
	for _, fn := range e.stateSubs {
		fn(st)
	}
}

func (e *Engine) publishUpdateLocked(u CardUpdate) {
	for _, fn := range e.updateSubs {
		fn(u)
	}
}
