package i18n

import (
	"log/slog"

	"github.com/dmitrymomot/langsync/pkg/logger"
)

// Option is a function that configures an Engine.
type Option func(*Engine)

// WithLogger provides a customizable logger for the engine.
// If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(e *Engine) {
		e.logger = logger.Discard()
		e.missingLogMode = false
	}
}

// WithMissingTranslationsLogging controls whether missing translations
// are logged. Default is false to avoid excessive logging.
func WithMissingTranslationsLogging(log bool) Option {
	return func(e *Engine) {
		e.missingLogMode = log
	}
}

// WithFallbackToKey determines whether T returns the key
// when a translation is not found. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(e *Engine) {
		e.fallbackToKey = fallback
	}
}

// WithEventBuffer sets how many change notifications each subscriber buffers.
// Older notifications are dropped once the buffer is full.
func WithEventBuffer(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.eventBuffer = size
		}
	}
}

// WithLanguage makes NewEngine switch to lang before returning.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		e.initial = lang
	}
}
