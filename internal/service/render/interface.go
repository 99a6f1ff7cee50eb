// Package render provides interfaces for types to be in compliance with.
package render

import "context"

// Feed output formats.
const (
	FormatRSS  = "rss"
	FormatAtom = "atom"
)

// Renderer defines a set of methods for types implementing Renderer.
type Renderer interface {
	RenderFeed(ctx context.Context, feedID string, format string) (document []byte, err error)
	RenderView(ctx context.Context, feedID string, emailID string) (page []byte, err error)
}
