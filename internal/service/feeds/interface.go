// Package feeds provides interfaces for types to be in compliance with.
package feeds

import (
	"context"

	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
)

// Keeper defines a set of methods for types implementing Keeper.
type Keeper interface {
	CreateFeed(ctx context.Context, userID string, name string) (modelmail.Feed, error)
	ListFeeds(ctx context.Context, userID string) ([]modelmail.Feed, error)
	GetFeed(ctx context.Context, feedID string) (modelmail.Feed, error)
	DeleteFeed(ctx context.Context, feedID string, requestingUserID string) error
	AppendEmail(ctx context.Context, feedID string, email modelmail.StoredEmail) error
	ListEmails(ctx context.Context, feedID string, limit int) ([]modelmail.StoredEmail, error)
	GetEmail(ctx context.Context, feedID string, emailID string) (modelmail.StoredEmail, error)
	PingDB() error
}
