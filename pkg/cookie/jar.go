package cookie

import (
	"context"
	"net/http"
	"sync"
)

// Jar is a name/value store with cookie semantics: values are scoped by the
// Path option and a negative MaxAge removes the entry.
type Jar interface {
	Get(ctx context.Context, name string) (string, bool)
	Set(ctx context.Context, name, value string, opts ...Option) error
}

// RequestJar is the Jar of a single HTTP exchange. Reads come from the request
// cookies, writes go to the response as Set-Cookie headers. A value written
// during the exchange shadows the incoming cookie of the same name.
type RequestJar struct {
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	written map[string]string
}

func NewRequestJar(m *Manager, w http.ResponseWriter, r *http.Request) *RequestJar {
	if m == nil {
		m = New()
	}
	return &RequestJar{manager: m, w: w, r: r, written: make(map[string]string)}
}

func (j *RequestJar) Get(_ context.Context, name string) (string, bool) {
	j.mu.Lock()
	v, ok := j.written[name]
	j.mu.Unlock()
	if ok {
		return v, v != ""
	}

	if j.r == nil {
		return "", false
	}
	v, err := j.manager.Get(j.r, name)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (j *RequestJar) Set(_ context.Context, name, value string, opts ...Option) error {
	if j.w == nil {
		return ErrNoResponseWriter
	}
	if applyOptions(j.manager.defaults, opts).MaxAge < 0 {
		value = ""
	}
	if err := j.manager.Set(j.w, name, value, opts...); err != nil {
		return err
	}

	j.mu.Lock()
	j.written[name] = value
	j.mu.Unlock()
	return nil
}

// Entry is a value held by a MemoryJar together with the options it was written with.
type Entry struct {
	Value   string
	Options Options
}

// MemoryJar keeps cookies in memory. It stands in for the browser cookie store
// of a long-lived client session.
type MemoryJar struct {
	defaults Options

	mu      sync.RWMutex
	entries map[string]Entry
	writes  int
	failure error
}

// NewMemoryJar creates an empty jar. opts set the defaults applied to every
// write, on top of Path "/".
func NewMemoryJar(opts ...Option) *MemoryJar {
	return &MemoryJar{
		defaults: applyOptions(Options{Path: "/", SameSite: http.SameSiteLaxMode}, opts),
		entries:  make(map[string]Entry),
	}
}

func (j *MemoryJar) Get(_ context.Context, name string) (string, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	e, ok := j.entries[name]
	return e.Value, ok
}

func (j *MemoryJar) Set(_ context.Context, name, value string, opts ...Option) error {
	if name == "" {
		return ErrEmptyName
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.failure != nil {
		return j.failure
	}

	j.writes++
	options := applyOptions(j.defaults, opts)
	if options.MaxAge < 0 {
		delete(j.entries, name)
		return nil
	}
	j.entries[name] = Entry{Value: value, Options: options}
	return nil
}

// Entry returns the stored entry for name.
func (j *MemoryJar) Entry(name string) (Entry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	e, ok := j.entries[name]
	return e, ok
}

// Writes returns the number of accepted Set calls.
func (j *MemoryJar) Writes() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.writes
}

// Fail makes every following Set return err, emulating disabled storage.
// Fail(nil) restores normal behaviour.
func (j *MemoryJar) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failure = err
}
