package i18n

import (
	"net/http"
	"strings"
)

// Detection carries the signals available for language autodetection.
type Detection struct {
	// Path is the request path; only its first segment is considered.
	Path string
	// HTMLTag is the page-level language tag.
	HTMLTag string
	// Cookie is the persisted language.
	Cookie string
	// AcceptLanguage is the raw Accept-Language header.
	AcceptLanguage string
}

// DetectionFromRequest collects detection signals from an HTTP request.
// The non-standard Language header stands in for the page-level tag.
func DetectionFromRequest(r *http.Request, cookieName string) Detection {
	d := Detection{
		Path:           r.URL.Path,
		HTMLTag:        r.Header.Get("Language"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			d.Cookie = c.Value
		}
	}
	return d
}

// PathLanguage returns the first segment of a URL path.
func PathLanguage(p string) string {
	p = strings.TrimPrefix(p, "/")
	if idx := strings.IndexByte(p, '/'); idx >= 0 {
		p = p[:idx]
	}
	return p
}

// Detect returns the first supported language found by walking the
// configured detection order, or the fallback language.
func (e *Engine) Detect(d Detection) string {
	lang, _ := e.DetectSource(d)
	return lang
}

// DetectSource is Detect that also reports which source matched.
// The source is empty when the fallback language was used.
func (e *Engine) DetectSource(d Detection) (string, string) {
	for _, source := range e.settings.DetectionOrder {
		var lang string
		switch source {
		case DetectPath:
			lang = e.matcher.match(PathLanguage(d.Path))
		case DetectHTMLTag:
			lang = e.matcher.match(d.HTMLTag)
		case DetectCookie:
			lang = e.matcher.match(d.Cookie)
		case DetectNavigator:
			lang = e.matcher.matchAcceptLanguage(d.AcceptLanguage)
		}
		if lang != "" {
			return lang, source
		}
	}
	return e.settings.FallbackLanguage, ""
}
