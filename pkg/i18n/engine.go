package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/langsync/pkg/async"
	"github.com/dmitrymomot/langsync/pkg/broadcast"
	"github.com/dmitrymomot/langsync/pkg/logger"
)

const defaultEventBuffer = 16

// LanguageChanged is published every time an engine applies a language change.
type LanguageChanged struct {
	Language string
	Previous string
	// Seq is the sequence number of the change request that was applied.
	Seq uint64
}

// Engine resolves, loads and applies languages and translates keys in the
// active one. An engine is explicitly injected where needed; Instance derives
// per-request or per-session engines that share the bundle cache.
//
// Language changes are asynchronous and sequenced: every ChangeLanguage call
// takes the next sequence number and cancels the in-flight load of the
// previous one, and only the latest request is ever applied.
type Engine struct {
	settings       Settings
	store          *bundleStore
	matcher        *matcher
	logger         *slog.Logger
	fallbackToKey  bool
	missingLogMode bool
	eventBuffer    int
	initial        string

	events *broadcast.MemoryBroadcaster[LanguageChanged]

	mu       sync.RWMutex
	language string
	resolved string
	seq      uint64
	inflight *async.Future[string]
	closed   bool
}

// NewEngine creates an engine serving settings from loader.
// The fallback language is loaded before returning and becomes the resolved
// language; with settings.Preload every supported language is loaded too.
func NewEngine(ctx context.Context, loader ResourceLoader, settings Settings, opts ...Option) (*Engine, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	settings = settings.normalize()
	if len(settings.Languages) == 0 {
		return nil, ErrNoLanguages
	}

	e := &Engine{
		settings:      settings,
		store:         newBundleStore(loader),
		matcher:       newMatcher(settings.Languages),
		logger:        logger.Discard(),
		fallbackToKey: true,
		eventBuffer:   defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("i18n"))
	e.events = broadcast.NewMemoryBroadcaster[LanguageChanged](e.eventBuffer)

	if err := e.store.load(ctx, settings.FallbackLanguage, settings.Namespaces); err != nil {
		return nil, fmt.Errorf("fallback language %q: %w", settings.FallbackLanguage, err)
	}
	e.language = settings.FallbackLanguage
	e.resolved = settings.FallbackLanguage

	if settings.Preload {
		e.Preload(ctx)
	}

	if e.initial != "" {
		if err := e.ChangeLanguageSync(ctx, e.initial); err != nil {
			return nil, err
		}
	}

	e.logger.InfoContext(ctx, "Translation engine ready",
		slog.Any("languages", settings.Languages),
		slog.Any("namespaces", settings.Namespaces),
		logger.Language(e.resolved),
	)
	return e, nil
}

// Preload loads every supported language into the shared cache.
// Failures are logged; the affected languages fall back when requested.
func (e *Engine) Preload(ctx context.Context) {
	futures := make([]*async.Future[string], 0, len(e.settings.Languages))
	for _, lang := range e.settings.Languages {
		futures = append(futures, async.Async(ctx, lang, func(ctx context.Context, lang string) (string, error) {
			return lang, e.store.load(ctx, lang, e.settings.Namespaces)
		}))
	}
	for _, f := range futures {
		if lang, err := f.Await(); err != nil {
			e.logger.WarnContext(ctx, "Failed to preload language", logger.Language(lang), logger.Error(err))
		}
	}
}

// Instance returns a new engine sharing settings, logger and bundle cache
// with e, starting at e's current language. Changes and subscriptions are
// independent from e.
func (e *Engine) Instance() *Engine {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return &Engine{
		settings:       e.settings,
		store:          e.store,
		matcher:        e.matcher,
		logger:         e.logger,
		fallbackToKey:  e.fallbackToKey,
		missingLogMode: e.missingLogMode,
		eventBuffer:    e.eventBuffer,
		events:         broadcast.NewMemoryBroadcaster[LanguageChanged](e.eventBuffer),
		language:       e.language,
		resolved:       e.resolved,
	}
}

// Settings returns the normalized settings of the engine.
func (e *Engine) Settings() Settings {
	s := e.settings
	s.Languages = slices.Clone(s.Languages)
	s.Namespaces = slices.Clone(s.Namespaces)
	s.DetectionOrder = slices.Clone(s.DetectionOrder)
	return s
}

// Languages returns the supported language codes.
func (e *Engine) Languages() []string {
	return slices.Clone(e.settings.Languages)
}

// FallbackLanguage returns the language used when nothing else matches.
func (e *Engine) FallbackLanguage() string {
	return e.settings.FallbackLanguage
}

// IsSupported reports whether lang maps onto a supported language.
func (e *Engine) IsSupported(lang string) bool {
	return e.matcher.match(lang) != ""
}

// Match returns the supported language lang maps onto, or "".
func (e *Engine) Match(lang string) string {
	return e.matcher.match(lang)
}

// Language returns the language last passed to an applied change, as given.
func (e *Engine) Language() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.language
}

// ResolvedLanguage returns the supported language currently active.
func (e *Engine) ResolvedLanguage() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolved
}

// Dir returns the text direction of the resolved language.
func (e *Engine) Dir() string {
	return Dir(e.ResolvedLanguage())
}

// Subscribe returns a subscription to language changes applied by this engine.
// The subscription ends when ctx is done or the engine is closed.
func (e *Engine) Subscribe(ctx context.Context) broadcast.Subscriber[LanguageChanged] {
	return e.events.Subscribe(ctx)
}

// ChangeLanguage starts switching the engine to lang and returns immediately.
// The returned future yields the resolved language once applied. lang is mapped
// onto a supported language first (unsupported codes resolve to the fallback),
// then all namespaces are loaded; a load failure falls back to the fallback
// language. A later call supersedes this one: its load is cancelled and the
// future fails with ErrChangeSuperseded.
func (e *Engine) ChangeLanguage(ctx context.Context, lang string) *async.Future[string] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return async.Resolved("", ErrEngineClosed)
	}

	e.seq++
	seq := e.seq
	if e.inflight != nil {
		e.inflight.Cancel()
	}

	target := e.matcher.match(lang)
	if target == "" {
		if lang != "" {
			e.logger.DebugContext(ctx, "Unsupported language requested",
				logger.Requested(lang), logger.Language(e.settings.FallbackLanguage))
		}
		target = e.settings.FallbackLanguage
	}

	e.inflight = async.Async(ctx, target, func(ctx context.Context, target string) (string, error) {
		loadErr := e.store.load(ctx, target, e.settings.Namespaces)
		return e.apply(ctx, seq, lang, target, loadErr)
	})
	return e.inflight
}

// ChangeLanguageSync switches the engine to lang and waits for the change.
func (e *Engine) ChangeLanguageSync(ctx context.Context, lang string) error {
	_, err := e.ChangeLanguage(ctx, lang).AwaitContext(ctx)
	return err
}

// apply makes target the resolved language if seq is still the latest request.
func (e *Engine) apply(ctx context.Context, seq uint64, requested, target string, loadErr error) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seq != seq || e.closed {
		return "", ErrChangeSuperseded
	}
	e.inflight = nil

	if loadErr != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if target == e.settings.FallbackLanguage {
			return "", loadErr
		}
		e.logger.WarnContext(ctx, "Falling back after load failure",
			logger.Requested(target), logger.Language(e.settings.FallbackLanguage), logger.Error(loadErr))
		target = e.settings.FallbackLanguage
	}

	prev := e.resolved
	e.language = requested
	e.resolved = target

	// published under the lock so subscribers observe changes in apply order
	_ = e.events.Broadcast(ctx, broadcast.Message[LanguageChanged]{
		Data: LanguageChanged{Language: target, Previous: prev, Seq: seq},
	})

	e.logger.DebugContext(ctx, "Language changed",
		logger.Language(target), logger.Requested(requested), logger.Seq(seq))
	return target, nil
}

// Close cancels any in-flight change and ends all subscriptions.
// Pending futures fail with ErrChangeSuperseded.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	if e.inflight != nil {
		e.inflight.Cancel()
		e.inflight = nil
	}
	e.mu.Unlock()

	return e.events.Close()
}

// IsSuperseded reports whether err means a newer change replaced the request.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrChangeSuperseded)
}
