// Package rest provides functionality for initializing a server for the newsletter feed service.
package rest

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	credentialsService "github.com/danilovkiri/dk_go_letterfeed/internal/service/credentials/v1"
	feedsService "github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds/v1"
	ingestService "github.com/danilovkiri/dk_go_letterfeed/internal/service/ingest/v1"
	patternService "github.com/danilovkiri/dk_go_letterfeed/internal/service/pattern/v1"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/render"
	renderService "github.com/danilovkiri/dk_go_letterfeed/internal/service/render/v1"
	secretaryService "github.com/danilovkiri/dk_go_letterfeed/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
)

var (
	serverStart = time.Now()
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, kvStorage storage.KVStorage) (server *http.Server, err error) {
	matcher, err := patternService.InitMatcher(kvStorage, nil)
	if err != nil {
		return nil, err
	}
	keeper, err := feedsService.InitKeeper(kvStorage, cfg.MailConfig)
	if err != nil {
		return nil, err
	}
	processor, err := ingestService.InitProcessor(keeper, matcher, cfg.MailConfig)
	if err != nil {
		return nil, err
	}
	renderer, err := renderService.InitRenderer(keeper, cfg.ServerConfig, cfg.MailConfig)
	if err != nil {
		return nil, err
	}
	secretary, err := secretaryService.NewSecretaryService(cfg.SecretConfig)
	if err != nil {
		return nil, err
	}
	registrar, err := credentialsService.InitRegistrar(kvStorage, secretary)
	if err != nil {
		return nil, err
	}
	cookieHandler, err := middleware.NewCookieHandler(registrar, cfg.SecretConfig)
	if err != nil {
		return nil, err
	}
	mailHandler, err := handlers.InitMailHandler(keeper, processor, renderer, registrar, cookieHandler)
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)
	r.Post("/api/webhook/inbound", mailHandler.HandlePostWebhook())
	r.Get("/feeds/{feedID}", mailHandler.HandleGetFeed(render.FormatRSS))
	r.Get("/feeds/{feedID}/rss", mailHandler.HandleGetFeed(render.FormatRSS))
	r.Get("/feeds/{feedID}/atom", mailHandler.HandleGetFeed(render.FormatAtom))
	r.Get("/feeds/{feedID}/view/{emailID}", mailHandler.HandleGetEmailView())
	r.Post("/api/user/register", mailHandler.HandleRegisterUser())
	r.Post("/api/user/login", mailHandler.HandleLoginUser())
	r.Group(func(r chi.Router) {
		r.Use(cookieHandler.AuthHandle)
		r.Post("/api/user/feeds", mailHandler.HandlePostFeed())
		r.Get("/api/user/feeds", mailHandler.HandleGetFeeds())
		r.Delete("/api/user/feeds/{feedID}", mailHandler.HandleDeleteFeed())
	})
	r.Get("/ping", mailHandler.HandlePingDB())
	r.Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	expvar.Publish("system.uptime", expvar.Func(uptime))

	srv := &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
