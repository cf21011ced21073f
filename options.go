package langsync

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/i18n"
)

const defaultQueueSize = 64

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCookieName sets the jar entry holding the persisted language.
// Defaults to i18n.DefaultCookieName.
func WithCookieName(name string) SessionOption {
	return func(s *Session) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithSessionLogger sets the session logger. Discarded by default.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize sets how many events may wait for the dispatcher.
func WithQueueSize(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// JarFunc returns the cookie jar of an HTTP exchange.
type JarFunc func(w http.ResponseWriter, r *http.Request) cookie.Jar

// RequestedFunc returns the language explicitly requested by an HTTP request, if any.
type RequestedFunc func(r *http.Request) string

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger    *slog.Logger
	jar       JarFunc
	requested RequestedFunc
}

// WithLogger sets the middleware logger. Discarded by default.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPersistence makes the middleware persist an explicitly requested
// language into the jar returned by fn, the way an interactive client would.
func WithPersistence(fn JarFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.jar = fn
	}
}

// WithRequested sets how the explicitly requested language is read from a
// request. By default it is the first path segment when that segment is a
// supported language.
func WithRequested(fn RequestedFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.requested = fn
		}
	}
}

// CookieJar returns a JarFunc writing plain cookies through m.
func CookieJar(m *cookie.Manager) JarFunc {
	return func(w http.ResponseWriter, r *http.Request) cookie.Jar {
		return cookie.NewRequestJar(m, w, r)
	}
}

// PathRequested reads the requested language from the first path segment,
// mapped onto the supported languages of engine.
func PathRequested(engine *i18n.Engine) RequestedFunc {
	return func(r *http.Request) string {
		return engine.Match(i18n.PathLanguage(r.URL.Path))
	}
}
