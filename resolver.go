package langsync

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/langsync/pkg/async"
	"github.com/dmitrymomot/langsync/pkg/broadcast"
	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
)

// CookieMaxAge is how long a persisted language is kept, in seconds.
const CookieMaxAge = 365 * 24 * 60 * 60

// Engine is the part of a translation engine the resolver drives.
// *i18n.Engine implements it.
type Engine interface {
	Language() string
	ResolvedLanguage() string
	ChangeLanguage(ctx context.Context, lang string) *async.Future[string]
	Subscribe(ctx context.Context) broadcast.Subscriber[i18n.LanguageChanged]
}

// ResolveServer applies requested to engine synchronously when it is given
// and differs from both the last applied request and the resolved language,
// and returns the resolved language. Repeating a request, including a
// non-canonical or unsupported code, does not change the engine again.
// It never writes to a cookie jar. A failed change leaves the engine as it was.
func ResolveServer(ctx context.Context, engine Engine, requested string) string {
	if requested == "" || engine.Language() == requested || engine.ResolvedLanguage() == requested {
		return engine.ResolvedLanguage()
	}

	// failures are not surfaced; the engine keeps its previous language
	_, _ = engine.ChangeLanguage(ctx, requested).AwaitContext(ctx)
	return engine.ResolvedLanguage()
}

// Persist writes requested to jar under name with path "/" when requested is
// given and differs from the stored value. It reports whether a write was
// attempted; write errors are logged at debug level and swallowed.
func Persist(ctx context.Context, jar cookie.Jar, name, requested string, l *slog.Logger) bool {
	if requested == "" || jar == nil {
		return false
	}
	if persisted, ok := jar.Get(ctx, name); ok && persisted == requested {
		return false
	}

	err := jar.Set(ctx, name, requested,
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(false),
		cookie.WithMaxAge(CookieMaxAge),
	)
	if err != nil && l != nil {
		l.DebugContext(ctx, "Failed to persist language",
			logger.Requested(requested), slog.String("cookie", name), logger.Error(err))
	}
	return true
}
