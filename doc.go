// Package cardstream turns a complete card JSON payload into a sequence of
// progressively more complete card documents, simulating token-by-token
// arrival the way a language-model completion stream delivers content.
//
// The package is built around five pieces:
//
//   - Tokenize splits source text into emission units at word and
//     punctuation boundaries.
//   - Reconstruct repairs a truncated JSON prefix into the largest valid
//     JSON value it contains.
//   - Normalize maps a (possibly partial) JSON value onto the CardDocument
//     shape, substituting the streaming sentinel for values that have not
//     arrived yet.
//   - Engine owns the streaming timeline (idle, thinking, streaming,
//     complete, aborted, error) and publishes StreamingState and CardUpdate
//     snapshots to subscribers.
//   - Sources (sources/static, sources/demo) supply card JSON to stream.
//
// Consumers never see malformed JSON: every CardUpdate carries a
// structurally valid CardDocument, even mid-stream. A reconstruction that
// does not yet parse is silently absorbed by re-emitting the previous
// snapshot.
package cardstream
