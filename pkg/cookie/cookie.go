package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes and reads plain cookies with a shared set of default attributes.
// Values are stored verbatim so that client-side code can read them too.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are Path "/", SameSite Lax and HttpOnly;
// opts override them.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns a copy of the manager's default options.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Cookie builds the http.Cookie Set would write.
func (m *Manager) Cookie(name, value string, opts ...Option) *http.Cookie {
	return applyOptions(m.defaults, opts).cookie(name, value)
}

// Set writes a Set-Cookie header. Invalid names or values are rejected
// with ErrInvalidCookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if name == "" {
		return ErrEmptyName
	}

	c := m.Cookie(name, value, opts...)
	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, err)
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the request cookie value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie in the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := applyOptions(m.defaults, []Option{WithMaxAge(-1)}).cookie(name, "")
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
