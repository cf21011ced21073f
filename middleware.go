package langsync

import (
	"net/http"

	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
)

// Middleware resolves the language of every request on its own engine
// instance. The explicitly requested language (the first path segment by
// default) wins; otherwise the language is autodetected from the page tag,
// cookie and Accept-Language. The instance and the resolved locale are stored
// in the request context and the locale is sent as Content-Language.
func Middleware(engine *i18n.Engine, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		logger:    logger.Discard(),
		requested: PathRequested(engine),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cookieName := engine.Settings().CookieName

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			inst := engine.Instance()
			defer inst.Close()

			requested := cfg.requested(r)
			lang := requested
			if lang == "" {
				lang = inst.Detect(i18n.DetectionFromRequest(r, cookieName))
			}
			resolved := ResolveServer(ctx, inst, lang)

			if requested != "" && cfg.jar != nil {
				Persist(ctx, cfg.jar(w, r), cookieName, requested, cfg.logger)
			}

			w.Header().Set("Content-Language", resolved)
			w.Header().Add("Vary", "Accept-Language")

			ctx = i18n.WithEngine(ctx, inst)
			ctx = i18n.SetLocale(ctx, resolved)
			cfg.logger.DebugContext(ctx, "Request language resolved",
				logger.Language(resolved), logger.Requested(requested))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
