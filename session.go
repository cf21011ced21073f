package langsync

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/langsync/pkg/async"
	"github.com/dmitrymomot/langsync/pkg/broadcast"
	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
)

// ErrSessionClosed is returned when waiting on a closed session.
var ErrSessionClosed = errors.New("session closed")

type broadcastMessage = broadcast.Message[i18n.LanguageChanged]

// Session reconciles an interactive client's requested language with the
// engine and the cookie jar. All state transitions run on one dispatcher
// goroutine fed by an event queue; engine change notifications are drained
// before every queued event, so each cycle sees the latest resolved language.
type Session struct {
	id         string
	engine     Engine
	jar        cookie.Jar
	cookieName string
	logger     *slog.Logger
	queueSize  int

	ctx    context.Context
	cancel context.CancelFunc
	events chan func()
	done   chan struct{}

	// owned by the dispatcher
	rendered  bool
	requested string
	pending   []*async.Future[string]

	mu        sync.RWMutex
	active    string
	observers map[uint64]func(string)
	nextObs   uint64
}

// NewSession starts a session over engine and jar. The session ends when ctx
// is done or Close is called.
func NewSession(ctx context.Context, engine Engine, jar cookie.Jar, opts ...SessionOption) *Session {
	s := &Session{
		id:         uuid.NewString(),
		engine:     engine,
		jar:        jar,
		cookieName: i18n.DefaultCookieName,
		logger:     logger.Discard(),
		queueSize:  defaultQueueSize,
		done:       make(chan struct{}),
		observers:  make(map[uint64]func(string)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("langsync"), logger.SessionID(s.id))
	s.events = make(chan func(), s.queueSize)
	s.ctx, s.cancel = context.WithCancel(ctx)

	// subscribe before reading the language so no change slips in between
	sub := engine.Subscribe(s.ctx)
	s.active = engine.ResolvedLanguage()

	go s.dispatch(sub.Receive(s.ctx))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ActiveLanguage returns the session's view of the engine's resolved language.
func (s *Session) ActiveLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Observe registers fn to be called on the dispatcher whenever the active
// language changes. fn must not wait on the session. The returned function
// unregisters it.
func (s *Session) Observe(fn func(lang string)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Render queues one reconciliation cycle for the requested language
// ("" means none) and returns without waiting for it.
func (s *Session) Render(requested string) {
	s.post(s.ctx, func() { s.render(requested) })
}

// Settle waits until every queued cycle ran and every language change they
// started completed, then until the resulting notifications were observed.
func (s *Session) Settle(ctx context.Context) error {
	if err := s.barrier(ctx); err != nil {
		return err
	}

	var pending []*async.Future[string]
	if err := s.call(ctx, func() {
		pending = s.pending
		s.pending = nil
	}); err != nil {
		return err
	}

	for _, f := range pending {
		if _, err := f.AwaitContext(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return s.barrier(ctx)
}

// Close stops the dispatcher and cancels language changes still in flight.
func (s *Session) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *Session) post(ctx context.Context, fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.events <- fn:
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}

// call runs fn on the dispatcher and waits for it.
func (s *Session) call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if !s.post(ctx, func() { fn(); close(ran) }) {
		return s.closedErr(ctx)
	}
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) barrier(ctx context.Context) error {
	return s.call(ctx, func() {})
}

func (s *Session) closedErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrSessionClosed
}

func (s *Session) dispatch(changes <-chan broadcastMessage) {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			s.syncActive()
		case fn := <-s.events:
			changes = s.drain(changes)
			fn()
		}
	}
}

// drain handles notifications already delivered so a queued event sees them.
func (s *Session) drain(changes <-chan broadcastMessage) <-chan broadcastMessage {
	for changes != nil {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			s.syncActive()
		default:
			return changes
		}
	}
	return nil
}

// syncActive copies the engine's resolved language into the session state.
func (s *Session) syncActive() {
	lang := s.engine.ResolvedLanguage()

	s.mu.Lock()
	if lang == s.active {
		s.mu.Unlock()
		return
	}
	s.active = lang
	observers := make([]func(string), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	s.logger.DebugContext(s.ctx, "Active language updated", logger.Language(lang))
	for _, fn := range observers {
		fn(lang)
	}
}

// render is one cycle: state recomputation, change detection, persistence.
func (s *Session) render(requested string) {
	s.syncActive()

	if !s.rendered || requested != s.requested {
		if requested != "" && s.engine.ResolvedLanguage() != requested {
			s.logger.DebugContext(s.ctx, "Changing language", logger.Requested(requested))
			s.pending = append(s.pending, s.engine.ChangeLanguage(s.ctx, requested))
		}
	}
	s.rendered = true
	s.requested = requested

	Persist(s.ctx, s.jar, s.cookieName, requested, s.logger)
}
