// Package credentials provides interfaces for types to be in compliance with.
package credentials

import (
	"context"

	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
)

// Registrar defines a set of methods for types implementing Registrar.
type Registrar interface {
	CreateAccount(ctx context.Context, email string, password string) (modelmail.User, error)
	VerifyCredentials(ctx context.Context, email string, password string) (modelmail.User, error)
	IssueSession(userID string) string
	ValidateSession(token string) (userID string, err error)
}
