// Package cookie provides a small HTTP cookie manager and a Jar abstraction
// over cookie-like key/value stores.
//
// Manager wraps net/http cookies with a set of default attributes (Path "/",
// SameSite Lax, HttpOnly) that individual writes can override through Option
// functions. Values are written verbatim; cookies meant to be read by scripts,
// such as a language preference, should be written WithHTTPOnly(false).
//
// Jar is the read/write contract used by code that only needs "get a named
// value" and "set a named value at a path": RequestJar binds it to one HTTP
// exchange, MemoryJar keeps values in memory for long-lived client sessions.
// Other packages provide further implementations (for example a Redis backed
// jar shared across processes).
//
//	m := cookie.New(cookie.WithSecure(true))
//
//	http.HandleFunc("/lang", func(w http.ResponseWriter, r *http.Request) {
//	    jar := cookie.NewRequestJar(m, w, r)
//	    if v, ok := jar.Get(r.Context(), "i18next"); !ok || v != "fr" {
//	        _ = jar.Set(r.Context(), "i18next", "fr", cookie.WithHTTPOnly(false))
//	    }
//	})
//
// Config allows the manager to be built from environment variables via
// github.com/caarlos0/env.
//
// Sentinel errors such as ErrCookieNotFound are exposed for errors.Is checks.
package cookie
