package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	credentialsService "github.com/danilovkiri/dk_go_letterfeed/internal/service/credentials/v1"
	feedsService "github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds/v1"
	ingestService "github.com/danilovkiri/dk_go_letterfeed/internal/service/ingest/v1"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	patternService "github.com/danilovkiri/dk_go_letterfeed/internal/service/pattern/v1"
	renderService "github.com/danilovkiri/dk_go_letterfeed/internal/service/render/v1"
	secretaryService "github.com/danilovkiri/dk_go_letterfeed/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage/inmemory"
)

const webhookToken = "test-webhook-token"

type HandlersTestSuite struct {
	suite.Suite
	kvStorage   *inmemory.Storage
	keeper      *feedsService.Keeper
	mailHandler *MailHandler
	router      *chi.Mux
	ts          *httptest.Server
	ctx         context.Context
}

func (suite *HandlersTestSuite) SetupTest() {
	cfg, _ := config.NewDefaultConfiguration()
	// necessary to set default parameters here since they are set in cfg.ParseFlags() which causes error
	cfg.ServerConfig.ServerAddress = ":8080"
	cfg.ServerConfig.BaseURL = "http://localhost:8080"
	cfg.MailConfig.WebhookToken = webhookToken
	suite.ctx = context.Background()
	suite.kvStorage = inmemory.InitStorage()
	suite.keeper, _ = feedsService.InitKeeper(suite.kvStorage, cfg.MailConfig)
	matcher, _ := patternService.InitMatcher(suite.kvStorage, nil)
	processor, _ := ingestService.InitProcessor(suite.keeper, matcher, cfg.MailConfig)
	renderer, _ := renderService.InitRenderer(suite.keeper, cfg.ServerConfig, cfg.MailConfig)
	sec, _ := secretaryService.NewSecretaryService(cfg.SecretConfig)
	registrar, _ := credentialsService.InitRegistrar(suite.kvStorage, sec)
	cookieHandler, _ := middleware.NewCookieHandler(registrar, cfg.SecretConfig)
	suite.mailHandler, _ = InitMailHandler(suite.keeper, processor, renderer, registrar, cookieHandler)
	suite.router = chi.NewRouter()
	suite.router.Post("/api/webhook/inbound", suite.mailHandler.HandlePostWebhook())
	suite.router.Get("/feeds/{feedID}", suite.mailHandler.HandleGetFeed("rss"))
	suite.router.Get("/feeds/{feedID}/rss", suite.mailHandler.HandleGetFeed("rss"))
	suite.router.Get("/feeds/{feedID}/atom", suite.mailHandler.HandleGetFeed("atom"))
	suite.router.Get("/feeds/{feedID}/view/{emailID}", suite.mailHandler.HandleGetEmailView())
	suite.router.Post("/api/user/register", suite.mailHandler.HandleRegisterUser())
	suite.router.Post("/api/user/login", suite.mailHandler.HandleLoginUser())
	suite.router.Group(func(r chi.Router) {
		r.Use(cookieHandler.AuthHandle)
		r.Post("/api/user/feeds", suite.mailHandler.HandlePostFeed())
		r.Get("/api/user/feeds", suite.mailHandler.HandleGetFeeds())
		r.Delete("/api/user/feeds/{feedID}", suite.mailHandler.HandleDeleteFeed())
	})
	suite.router.Get("/ping", suite.mailHandler.HandlePingDB())
	suite.ts = httptest.NewServer(suite.router)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.ts.Close()
}

// TestHandlersTestSuite initializes test suite for being accessible
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

// register creates an account over HTTP and returns an authenticated client.
func (suite *HandlersTestSuite) register(email string) *resty.Client {
	client := resty.New()
	res, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(modeldto.RequestUser{Email: email, Password: "correct horse battery"}).
		Post(suite.ts.URL + "/api/user/register")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusCreated, res.StatusCode())
	suite.Require().NotEmpty(res.Cookies())
	client.SetCookies(res.Cookies())
	return client
}

// createFeed creates a feed over HTTP for an authenticated client.
func (suite *HandlersTestSuite) createFeed(client *resty.Client, name string) modeldto.ResponseFeed {
	res, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(modeldto.RequestFeed{Name: name}).
		Post(suite.ts.URL + "/api/user/feeds")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusCreated, res.StatusCode())
	var feed modeldto.ResponseFeed
	suite.Require().NoError(json.Unmarshal(res.Body(), &feed))
	return feed
}

func webhookBody(emailID string, recipient string, subject string) modeldto.InboundEvent {
	return modeldto.InboundEvent{
		Event:     "email.received",
		Timestamp: 1700000000,
		Email: modeldto.InboundEmail{
			ID:        emailID,
			Recipient: recipient,
			Subject:   subject,
			From: modeldto.InboundFrom{
				Text: "The Editor <editor@news.example>",
				Addresses: []modeldto.InboundAddress{
					{Address: "editor@news.example", Name: "The Editor"},
				},
			},
			ReceivedAt: "2023-11-14T22:13:20Z",
			ParsedData: modeldto.InboundParsedData{
				TextBody: "issue body",
				HTMLBody: `<p>issue body</p><a href="https://news.example/view/1">View online</a>`,
			},
		},
	}
}

func (suite *HandlersTestSuite) TestHandlePostWebhook() {
	client := suite.register("owner@example.com")
	feed := suite.createFeed(client, "Webhook Letters")

	// set tests' parameters
	type want struct {
		code int
	}
	tests := []struct {
		name      string
		token     string
		recipient string
		want      want
	}{
		{
			name:      "Correct webhook query",
			token:     webhookToken,
			recipient: feed.EmailAddress,
			want: want{
				code: 200,
			},
		},
		{
			name:      "Wrong token webhook query",
			token:     "wrong-token",
			recipient: feed.EmailAddress,
			want: want{
				code: 401,
			},
		},
		{
			name:      "Unknown feed webhook query",
			token:     webhookToken,
			recipient: "unknown99@mail.letterfeed.local",
			want: want{
				code: 404,
			},
		},
		{
			name:      "Malformed recipient webhook query",
			token:     webhookToken,
			recipient: "",
			want: want{
				code: 400,
			},
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := resty.New().R().
				SetHeader("Content-Type", "application/json").
				SetHeader(WebhookTokenHeader, tt.token).
				SetBody(webhookBody("event-1", tt.recipient, "Subject")).
				Post(suite.ts.URL + "/api/webhook/inbound")
			if err != nil {
				t.Fatalf(err.Error())
			}
			assert.Equal(t, tt.want.code, res.StatusCode())
		})
	}
}

func (suite *HandlersTestSuite) TestHandlePostWebhookMalformedBody() {
	res, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetHeader(WebhookTokenHeader, webhookToken).
		SetBody("{not json").
		Post(suite.ts.URL + "/api/webhook/inbound")
	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())
}

func (suite *HandlersTestSuite) TestHandleGetFeed() {
	client := suite.register("reader@example.com")
	feed := suite.createFeed(client, "Morning Letters")
	res, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetHeader(WebhookTokenHeader, webhookToken).
		SetBody(webhookBody("event-1", feed.EmailAddress, "First issue")).
		Post(suite.ts.URL + "/api/webhook/inbound")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())

	// set tests' parameters
	type want struct {
		code        int
		contentType string
		marker      string
	}
	tests := []struct {
		name string
		path string
		want want
	}{
		{
			name: "Default format query",
			path: "/feeds/" + feed.ID,
			want: want{
				code:        200,
				contentType: "application/rss+xml; charset=utf-8",
				marker:      "<rss",
			},
		},
		{
			name: "RSS format query",
			path: "/feeds/" + feed.ID + "/rss",
			want: want{
				code:        200,
				contentType: "application/rss+xml; charset=utf-8",
				marker:      "First issue",
			},
		},
		{
			name: "Atom format query",
			path: "/feeds/" + feed.ID + "/atom",
			want: want{
				code:        200,
				contentType: "application/atom+xml; charset=utf-8",
				marker:      "http://www.w3.org/2005/Atom",
			},
		},
		{
			name: "Unknown feed query",
			path: "/feeds/absent9999",
			want: want{
				code: 404,
			},
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := resty.New().R().Get(suite.ts.URL + tt.path)
			if err != nil {
				t.Fatalf(err.Error())
			}
			assert.Equal(t, tt.want.code, res.StatusCode())
			if tt.want.contentType != "" {
				assert.Equal(t, tt.want.contentType, res.Header().Get("Content-Type"))
			}
			if tt.want.marker != "" {
				assert.Contains(t, string(res.Body()), tt.want.marker)
			}
		})
	}
}

func (suite *HandlersTestSuite) TestHandleGetEmailView() {
	client := suite.register("viewer@example.com")
	feed := suite.createFeed(client, "Viewable Letters")
	res, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetHeader(WebhookTokenHeader, webhookToken).
		SetBody(webhookBody("event-1", feed.EmailAddress, "Viewable issue")).
		Post(suite.ts.URL + "/api/webhook/inbound")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())

	res, err = resty.New().R().Get(suite.ts.URL + "/feeds/" + feed.ID + "/view/event-1")
	suite.NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Equal("text/html; charset=utf-8", res.Header().Get("Content-Type"))
	suite.Contains(string(res.Body()), "<h1>Viewable issue</h1>")
	suite.Contains(string(res.Body()), "https://news.example/view/1")

	res, err = resty.New().R().Get(suite.ts.URL + "/feeds/" + feed.ID + "/view/absent-email")
	suite.NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())
}

func (suite *HandlersTestSuite) TestHandleRegisterUser() {
	client := resty.New()
	res, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(modeldto.RequestUser{Email: "new@example.com", Password: "correct horse battery"}).
		Post(suite.ts.URL + "/api/user/register")
	suite.NoError(err)
	suite.Equal(http.StatusCreated, res.StatusCode())
	var user modeldto.ResponseUser
	suite.NoError(json.Unmarshal(res.Body(), &user))
	suite.Equal("new@example.com", user.Email)
	suite.NotEmpty(user.ID)

	// duplicate registration conflicts
	res, err = client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(modeldto.RequestUser{Email: "new@example.com", Password: "correct horse battery"}).
		Post(suite.ts.URL + "/api/user/register")
	suite.NoError(err)
	suite.Equal(http.StatusConflict, res.StatusCode())

	// malformed email is rejected
	res, err = client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(modeldto.RequestUser{Email: "not-an-address", Password: "correct horse battery"}).
		Post(suite.ts.URL + "/api/user/register")
	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())
}

func (suite *HandlersTestSuite) TestHandleLoginUser() {
	suite.register("login@example.com")

	// set tests' parameters
	type want struct {
		code int
	}
	tests := []struct {
		name     string
		email    string
		password string
		want     want
	}{
		{
			name:     "Correct login query",
			email:    "login@example.com",
			password: "correct horse battery",
			want: want{
				code: 200,
			},
		},
		{
			name:     "Wrong password login query",
			email:    "login@example.com",
			password: "wrong password here",
			want: want{
				code: 401,
			},
		},
		{
			name:     "Unknown email login query",
			email:    "ghost@example.com",
			password: "correct horse battery",
			want: want{
				code: 401,
			},
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := resty.New().R().
				SetHeader("Content-Type", "application/json").
				SetBody(modeldto.RequestUser{Email: tt.email, Password: tt.password}).
				Post(suite.ts.URL + "/api/user/login")
			if err != nil {
				t.Fatalf(err.Error())
			}
			assert.Equal(t, tt.want.code, res.StatusCode())
		})
	}
}

func (suite *HandlersTestSuite) TestHandleFeedsLifecycle() {
	client := suite.register("owner@example.com")

	// unauthenticated feed listing is rejected
	res, err := resty.New().R().Get(suite.ts.URL + "/api/user/feeds")
	suite.NoError(err)
	suite.Equal(http.StatusUnauthorized, res.StatusCode())

	first := suite.createFeed(client, "First Letters")
	second := suite.createFeed(client, "Second Letters")
	suite.True(strings.HasSuffix(first.EmailAddress, "@mail.letterfeed.local"))

	res, err = client.R().Get(suite.ts.URL + "/api/user/feeds")
	suite.NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	var listed []modeldto.ResponseFeed
	suite.NoError(json.Unmarshal(res.Body(), &listed))
	suite.Len(listed, 2)
	suite.Equal(first.ID, listed[0].ID)
	suite.Equal(second.ID, listed[1].ID)

	// a feed of another user cannot be deleted
	stranger := suite.register("stranger@example.com")
	res, err = stranger.R().Delete(suite.ts.URL + "/api/user/feeds/" + first.ID)
	suite.NoError(err)
	suite.Equal(http.StatusForbidden, res.StatusCode())

	res, err = client.R().Delete(suite.ts.URL + "/api/user/feeds/" + first.ID)
	suite.NoError(err)
	suite.Equal(http.StatusNoContent, res.StatusCode())

	res, err = client.R().Get(suite.ts.URL + "/api/user/feeds")
	suite.NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	listed = nil
	suite.NoError(json.Unmarshal(res.Body(), &listed))
	suite.Len(listed, 1)
	suite.Equal(second.ID, listed[0].ID)

	res, err = client.R().Delete(suite.ts.URL + "/api/user/feeds/absent9999")
	suite.NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())
}

func (suite *HandlersTestSuite) TestHandlePingDB() {
	res, err := resty.New().R().Get(suite.ts.URL + "/ping")
	suite.NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
}

func TestInitMailHandler(t *testing.T) {
	_, err := InitMailHandler(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestInboundFromDTOTimestampFallback(t *testing.T) {
	event := webhookBody("event-1", "somefeed01@mail.letterfeed.local", "Subject")
	event.Email.ReceivedAt = "not-a-timestamp"
	inbound := inboundFromDTO(event)
	assert.Equal(t, int64(1700000000), inbound.ReceivedAt.Unix())
	assert.Len(t, inbound.Senders, 1)
	assert.Equal(t, modelmail.Sender{Name: "The Editor", Email: "editor@news.example"}, inbound.Senders[0])
}
