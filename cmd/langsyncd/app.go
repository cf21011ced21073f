package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/langsync"
	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/httpserver"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
	"github.com/dmitrymomot/langsync/pkg/redis"
	"github.com/dmitrymomot/langsync/pkg/requestid"
)

type app struct {
	engine       *i18n.Engine
	cookies      *cookie.Manager
	jars         *redis.Store // nil unless Redis persistence is enabled
	clientCookie string
	log          *slog.Logger
}

func (a *app) routes(checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, checks...))
	r.Get("/languages", a.listLanguages)
	r.Get("/locales/{lng}/{ns}.json", a.exportBundle)

	r.Group(func(r chi.Router) {
		r.Use(langsync.Middleware(a.engine, langsync.WithLogger(a.log)))
		r.Get("/", a.greeting)
		r.Get("/{lng}/", a.greeting)
		r.Post("/language", a.changeLanguage)
	})

	return r
}

// jar returns where persisted languages live for this exchange: the plain
// i18next cookie, mirrored into Redis when enabled.
func (a *app) jar(w http.ResponseWriter, r *http.Request) cookie.Jar {
	local := cookie.NewRequestJar(a.cookies, w, r)
	if a.jars == nil {
		return local
	}

	id, err := a.cookies.Get(r, a.clientCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
		if err := a.cookies.Set(w, a.clientCookie, id, cookie.WithMaxAge(langsync.CookieMaxAge)); err != nil {
			a.log.DebugContext(r.Context(), "Failed to issue client id", slog.String("cookie", a.clientCookie), logger.Error(err))
		}
	}
	return mirrorJar{primary: a.jars.Jar(id), mirror: local}
}

// mirrorJar keeps a persisted value in primary and mirrors it into the
// request cookie so autodetection sees it on the next request. Get reports a
// value only when both jars hold it, so a write restores whichever is behind.
type mirrorJar struct {
	primary cookie.Jar
	mirror  cookie.Jar
}

func (j mirrorJar) Get(ctx context.Context, name string) (string, bool) {
	v, ok := j.primary.Get(ctx, name)
	if !ok {
		return "", false
	}
	if m, ok := j.mirror.Get(ctx, name); !ok || m != v {
		return "", false
	}
	return v, true
}

func (j mirrorJar) Set(ctx context.Context, name, value string, opts ...cookie.Option) error {
	return errors.Join(
		j.primary.Set(ctx, name, value, opts...),
		j.mirror.Set(ctx, name, value, opts...),
	)
}
