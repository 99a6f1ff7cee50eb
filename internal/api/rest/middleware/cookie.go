// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"net/http"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/credentials"
)

// ContextKey defines a dedicated type for context keys set by middleware.
type ContextKey string

// UserIDContextKey is the context key under which the authenticated user id is stored.
const UserIDContextKey ContextKey = "userID"

// CookieHandler sets object structure.
type CookieHandler struct {
	registrar credentials.Registrar
	cfg       *config.SecretConfig
}

// NewCookieHandler initializes a new cookie handler.
func NewCookieHandler(registrar credentials.Registrar, cfg *config.SecretConfig) (*CookieHandler, error) {
	return &CookieHandler{
		registrar: registrar,
		cfg:       cfg,
	}, nil
}

// AuthHandle requires a valid session cookie and stores the authenticated user
// id in the request context.
func (c *CookieHandler) AuthHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(c.cfg.AuthKey)
		if err != nil {
			http.Error(w, "session cookie is missing", http.StatusUnauthorized)
			return
		}
		userID, err := c.registrar.ValidateSession(cookie.Value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie attaches a session token to the response.
func (c *CookieHandler) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.AuthKey,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// UserIDFromContext retrieves the authenticated user id set by AuthHandle.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok
}
