// Package ingest provides interfaces for types to be in compliance with.
package ingest

import (
	"context"

	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	Process(ctx context.Context, token string, event modelmail.InboundEmail) (emailID string, err error)
}
