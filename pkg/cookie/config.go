package cookie

import "net/http"

// Config describes Manager defaults in environment variables.
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // http.SameSiteLaxMode
}

// DefaultConfig mirrors the defaults of New.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig creates a Manager with cfg as defaults. Zero Path and
// SameSite keep the package defaults; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	fromConfig := func(o *Options) {
		if cfg.Path != "" {
			o.Path = cfg.Path
		}
		if cfg.SameSite != 0 {
			o.SameSite = cfg.SameSite
		}
		o.Domain = cfg.Domain
		o.MaxAge = cfg.MaxAge
		o.Secure = cfg.Secure
		o.HttpOnly = cfg.HttpOnly
	}
	return New(append([]Option{fromConfig}, opts...)...)
}
