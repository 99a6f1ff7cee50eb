// Package pattern provides interfaces for types to be in compliance with.
package pattern

import "context"

// Extractor defines a set of methods for types implementing Extractor.
type Extractor interface {
	Extract(ctx context.Context, html string, feedID string) (link string, found bool)
	Learn(ctx context.Context, regex string, feedID string, source string) error
}

// Suggester defines an injectable capability producing a new matching pattern
// for HTML that no known heuristic matched. Implementations are consulted only
// on a full miss; a nil Suggester disables learning entirely.
type Suggester interface {
	Suggest(html string) (regex string, ok bool)
}
