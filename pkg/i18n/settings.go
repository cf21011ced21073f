package i18n

import (
	"slices"
	"strings"
)

// Detection sources understood by Settings.DetectionOrder.
const (
	DetectPath      = "path"
	DetectHTMLTag   = "htmlTag"
	DetectCookie    = "cookie"
	DetectNavigator = "navigator"
)

// DefaultLanguage is the fallback language used when none is configured.
const DefaultLanguage = "en"

// DefaultNamespace is the namespace used for keys without an explicit "ns:" prefix.
const DefaultNamespace = "translation"

// DefaultCookieName is the cookie holding the persisted language.
const DefaultCookieName = "i18next"

// Settings describes the languages and namespaces an engine serves.
// It is loaded from the environment with pkg/config.
type Settings struct {
	Languages        []string `env:"I18N_LANGUAGES" envDefault:"en" envSeparator:","`
	FallbackLanguage string   `env:"I18N_FALLBACK_LANGUAGE" envDefault:"en"`
	Namespaces       []string `env:"I18N_NAMESPACES" envDefault:"translation" envSeparator:","`
	DefaultNamespace string   `env:"I18N_DEFAULT_NAMESPACE" envDefault:"translation"`
	CookieName       string   `env:"I18N_COOKIE_NAME" envDefault:"i18next"`
	DetectionOrder   []string `env:"I18N_DETECTION_ORDER" envDefault:"path,htmlTag,cookie,navigator" envSeparator:","`
	// Preload loads every supported language at engine construction.
	// Rendering environments enable it; interactive clients load lazily.
	Preload bool `env:"I18N_PRELOAD" envDefault:"false"`
}

// DefaultSettings returns settings equivalent to an empty environment.
func DefaultSettings() Settings {
	return Settings{
		Languages:        []string{DefaultLanguage},
		FallbackLanguage: DefaultLanguage,
		Namespaces:       []string{DefaultNamespace},
		DefaultNamespace: DefaultNamespace,
		CookieName:       DefaultCookieName,
		DetectionOrder:   []string{DetectPath, DetectHTMLTag, DetectCookie, DetectNavigator},
	}
}

// normalize lowercases language codes, drops blanks and duplicates and fills
// missing values from DefaultSettings. The fallback language is always supported.
func (s Settings) normalize() Settings {
	def := DefaultSettings()

	s.Languages = normalizeList(s.Languages, strings.ToLower)
	s.FallbackLanguage = strings.ToLower(strings.TrimSpace(s.FallbackLanguage))
	if s.FallbackLanguage == "" {
		if len(s.Languages) > 0 {
			s.FallbackLanguage = s.Languages[0]
		} else {
			s.FallbackLanguage = def.FallbackLanguage
		}
	}
	if !slices.Contains(s.Languages, s.FallbackLanguage) {
		s.Languages = append(s.Languages, s.FallbackLanguage)
	}

	s.Namespaces = normalizeList(s.Namespaces, nil)
	s.DefaultNamespace = strings.TrimSpace(s.DefaultNamespace)
	if s.DefaultNamespace == "" {
		if len(s.Namespaces) > 0 {
			s.DefaultNamespace = s.Namespaces[0]
		} else {
			s.DefaultNamespace = def.DefaultNamespace
		}
	}
	if !slices.Contains(s.Namespaces, s.DefaultNamespace) {
		s.Namespaces = append([]string{s.DefaultNamespace}, s.Namespaces...)
	}

	if s.CookieName = strings.TrimSpace(s.CookieName); s.CookieName == "" {
		s.CookieName = def.CookieName
	}

	s.DetectionOrder = normalizeList(s.DetectionOrder, nil)
	if len(s.DetectionOrder) == 0 {
		s.DetectionOrder = def.DetectionOrder
	}

	return s
}

func normalizeList(in []string, transform func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if transform != nil {
			v = transform(v)
		}
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
