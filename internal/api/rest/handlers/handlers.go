// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/credentials"
	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/ingest"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/render"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
)

// WebhookTokenHeader carries the pre-shared webhook verification token.
const WebhookTokenHeader = "X-Webhook-Token"

// MailHandler defines data structure handling and provides support for adding new implementations.
type MailHandler struct {
	keeper        feeds.Keeper
	processor     ingest.Processor
	renderer      render.Renderer
	registrar     credentials.Registrar
	cookieHandler *middleware.CookieHandler
}

// InitMailHandler initializes a MailHandler object and sets its attributes.
func InitMailHandler(k feeds.Keeper, p ingest.Processor, r render.Renderer, reg credentials.Registrar, ch *middleware.CookieHandler) (*MailHandler, error) {
	if k == nil || p == nil || r == nil || reg == nil || ch == nil {
		return nil, fmt.Errorf("nil service was passed to mail handler initializer")
	}
	return &MailHandler{keeper: k, processor: p, renderer: r, registrar: reg, cookieHandler: ch}, nil
}

// HandlePostWebhook consumes one inbound email event and stores it as a feed email.
func (h *MailHandler) HandlePostWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var event modeldto.InboundEvent
		err = json.Unmarshal(b, &event)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Webhook POST request detected for", event.Email.Recipient)
		emailID, err := h.processor.Process(ctx, r.Header.Get(WebhookTokenHeader), inboundFromDTO(event))
		if err != nil {
			log.Println("HandlePostWebhook:", err)
			writeServiceError(w, err)
			return
		}
		resBody, err := json.Marshal(modeldto.ResponseWebhook{Success: true, EmailID: emailID})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// set and send response body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// HandleGetFeed serves a feed as RSS 2.0 or Atom XML depending on the format argument.
func (h *MailHandler) HandleGetFeed(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		feedID := chi.URLParam(r, "feedID")
		log.Println("GET request detected for feed", feedID, "as", format)
		document, err := h.renderer.RenderFeed(ctx, feedID, format)
		if err != nil {
			log.Println("HandleGetFeed:", err)
			writeServiceError(w, err)
			return
		}
		contentType := "application/rss+xml; charset=utf-8"
		if format == render.FormatAtom {
			contentType = "application/atom+xml; charset=utf-8"
		}
		// feed documents change only on new ingestion and are safely cacheable
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		w.Write(document)
	}
}

// HandleGetEmailView serves one stored email as an HTML page.
func (h *MailHandler) HandleGetEmailView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		feedID := chi.URLParam(r, "feedID")
		emailID := chi.URLParam(r, "emailID")
		log.Println("GET request detected for email view", feedID, emailID)
		page, err := h.renderer.RenderView(ctx, feedID, emailID)
		if err != nil {
			log.Println("HandleGetEmailView:", err)
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}
}

// HandleRegisterUser creates an account and opens a session for it.
func (h *MailHandler) HandleRegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		var post modeldto.RequestUser
		if err := decodeJSONBody(r, &post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, err := h.registrar.CreateAccount(ctx, post.Email, post.Password)
		if err != nil {
			log.Println("HandleRegisterUser:", err)
			writeServiceError(w, err)
			return
		}
		h.cookieHandler.SetSessionCookie(w, h.registrar.IssueSession(user.ID))
		resBody, err := json.Marshal(modeldto.ResponseUser{ID: user.ID, Email: user.Email})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(resBody)
	}
}

// HandleLoginUser verifies credentials and opens a session.
func (h *MailHandler) HandleLoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		var post modeldto.RequestUser
		if err := decodeJSONBody(r, &post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, err := h.registrar.VerifyCredentials(ctx, post.Email, post.Password)
		if err != nil {
			log.Println("HandleLoginUser:", err)
			writeServiceError(w, err)
			return
		}
		h.cookieHandler.SetSessionCookie(w, h.registrar.IssueSession(user.ID))
		resBody, err := json.Marshal(modeldto.ResponseUser{ID: user.ID, Email: user.Email})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// HandlePostFeed creates a feed for the authenticated user.
func (h *MailHandler) HandlePostFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "no user identity in request context", http.StatusUnauthorized)
			return
		}
		var post modeldto.RequestFeed
		if err := decodeJSONBody(r, &post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		feed, err := h.keeper.CreateFeed(ctx, userID, post.Name)
		if err != nil {
			log.Println("HandlePostFeed:", err)
			writeServiceError(w, err)
			return
		}
		resBody, err := json.Marshal(feedToDTO(feed))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(resBody)
	}
}

// HandleGetFeeds lists the authenticated user's feeds in creation order.
func (h *MailHandler) HandleGetFeeds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "no user identity in request context", http.StatusUnauthorized)
			return
		}
		userFeeds, err := h.keeper.ListFeeds(ctx, userID)
		if err != nil {
			log.Println("HandleGetFeeds:", err)
			writeServiceError(w, err)
			return
		}
		resData := make([]modeldto.ResponseFeed, 0, len(userFeeds))
		for _, feed := range userFeeds {
			resData = append(resData, feedToDTO(feed))
		}
		resBody, err := json.Marshal(resData)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(resBody)
	}
}

// HandleDeleteFeed deletes one feed of the authenticated user with all of its emails.
func (h *MailHandler) HandleDeleteFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "no user identity in request context", http.StatusUnauthorized)
			return
		}
		feedID := chi.URLParam(r, "feedID")
		err := h.keeper.DeleteFeed(ctx, feedID, userID)
		if err != nil {
			log.Println("HandleDeleteFeed:", err)
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandlePingDB verifies the storage connection.
func (h *MailHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.keeper.PingDB()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// decodeJSONBody reads and unmarshals a JSON request body.
func decodeJSONBody(r *http.Request, v interface{}) error {
	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// writeServiceError maps typed service errors onto HTTP status codes, unknown
// failures map to an internal error response.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validationError     *serviceErrors.ValidationError
		authenticationError *serviceErrors.AuthenticationError
		authorizationError  *serviceErrors.AuthorizationError
		notFoundError       *serviceErrors.NotFoundError
		conflictError       *serviceErrors.ConflictError
		timeoutError        *storageErrors.ContextTimeoutExceededError
	)
	switch {
	case errors.As(err, &validationError):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &authenticationError):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.As(err, &authorizationError):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.As(err, &notFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &conflictError):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &timeoutError):
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// inboundFromDTO maps a webhook event body onto the service inbound email model.
func inboundFromDTO(event modeldto.InboundEvent) modelmail.InboundEmail {
	senders := make([]modelmail.Sender, 0, len(event.Email.From.Addresses))
	for _, address := range event.Email.From.Addresses {
		senders = append(senders, modelmail.Sender{Name: address.Name, Email: address.Address})
	}
	var receivedAt time.Time
	if parsed, err := time.Parse(time.RFC3339, event.Email.ReceivedAt); err == nil {
		receivedAt = parsed
	} else if event.Timestamp > 0 {
		receivedAt = time.Unix(event.Timestamp, 0)
	}
	return modelmail.InboundEmail{
		ID:         event.Email.ID,
		Recipient:  event.Email.Recipient,
		Subject:    event.Email.Subject,
		Senders:    senders,
		HTML:       event.Email.ParsedData.HTMLBody,
		Text:       event.Email.ParsedData.TextBody,
		ReceivedAt: receivedAt,
	}
}

func feedToDTO(feed modelmail.Feed) modeldto.ResponseFeed {
	return modeldto.ResponseFeed{
		ID:           feed.ID,
		Name:         feed.Name,
		EmailAddress: feed.EmailAddress,
		CreatedAt:    feed.CreatedAt.Unix(),
	}
}
