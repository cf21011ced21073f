package cookie

import "net/http"

// Options are the attributes written with a cookie value.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int // seconds; 0 is a session cookie, negative deletes
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides one attribute.
type Option func(*Options)

func WithPath(path string) Option       { return func(o *Options) { o.Path = path } }
func WithDomain(domain string) Option   { return func(o *Options) { o.Domain = domain } }
func WithMaxAge(seconds int) Option     { return func(o *Options) { o.MaxAge = seconds } }
func WithSecure(secure bool) Option     { return func(o *Options) { o.Secure = secure } }
func WithHTTPOnly(httpOnly bool) Option { return func(o *Options) { o.HttpOnly = httpOnly } }

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

// Apply returns base with opts applied. Nil options are skipped.
func Apply(base Options, opts ...Option) Options {
	return applyOptions(base, opts)
}

func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}

func (o Options) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}
