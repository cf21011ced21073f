package i18n

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/langsync/pkg/logger"
)

// localeContextKey is the key for storing locale in context
type localeContextKey struct{}

type engineContextKey struct{}

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from the context.
// If no locale is set, will return default locale - "en".
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// WithEngine stores a (typically per-request) engine instance in the context.
func WithEngine(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, engineContextKey{}, e)
}

// FromContext returns the engine stored by WithEngine.
func FromContext(ctx context.Context) (*Engine, bool) {
	e, ok := ctx.Value(engineContextKey{}).(*Engine)
	return e, ok && e != nil
}

// LogExtractor adds the request locale to log records.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		locale, ok := ctx.Value(localeContextKey{}).(string)
		if !ok || locale == "" {
			return slog.Attr{}, false
		}
		return logger.Language(locale), true
	}
}
