package cardstream

import "context"

// Source supplies complete card JSON for the engine to stream. The engine
// itself only ever consumes in-memory text; sources exist so applications
// can swap where that text comes from (static assets, generated demo
// cards) without touching the streaming path.
//
// Implementations:
//   - sources/static: fixed text, in-memory or file-backed
//   - sources/demo: randomly generated cards for development
type Source interface {
	// CardJSON returns the complete source text for one card.
	CardJSON(ctx context.Context) (string, error)

	// Name returns the source identifier (e.g., "static", "demo")
	Name() string
}
