package httpserver

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Option configures a Server. Options panic on invalid arguments so that
// misconfiguration fails at startup.
type Option func(*config)

// WithAddr sets the listen address; ":0" picks a free port.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty address")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustBePositive("read timeout", d)
	return func(c *config) { c.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustBePositive("write timeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustBePositive("idle timeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	mustBePositive("shutdown timeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithServer runs srv instead of a fresh http.Server. Fields already set on
// srv win over the options above; Handler is always replaced.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: nil server")
	}
	return func(c *config) { c.server = srv }
}

// WithLogger sets the server logger. Discarded when nil.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStartHook registers a callback that runs once the listener is bound.
// It receives the bound address, which differs from the configured one for ":0".
func WithStartHook(h func(*slog.Logger, net.Addr)) Option {
	if h == nil {
		panic("httpserver: nil start hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback that runs after shutdown completes.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: nil stop hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func mustBePositive(name string, d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("httpserver: %s must be > 0, got %s", name, d))
	}
}
