package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs logfmt-style records from the standard text handler.
	FormatText Format = "text"
	// FormatPretty outputs compact, optionally coloured records for local development.
	FormatPretty Format = "pretty"
)

// Environment names recognised by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Option configures logger creation.
type Option func(*config)

type config struct {
	level          slog.Level
	format         Format
	output         io.Writer
	color          *bool
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	extractors     []ContextExtractor
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for unknown formats so misconfiguration fails at startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText, FormatPretty:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q, %q or %q", f, FormatJSON, FormatText, FormatPretty))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithColor forces colour on or off for FormatPretty.
// By default colour is enabled only when writing to stdout or stderr.
func WithColor(enabled bool) Option {
	return func(c *config) { c.color = &enabled }
}

// WithHandlerOptions overrides the slog handler options for json and text formats.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue adds an extractor logging ctx.Value(key) under name.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithEnvironment applies the preset for env and tags records with service and env.
// Development logs debug records in the pretty format; staging and production log
// info records as JSON. Unknown names fall back to development.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		switch strings.ToLower(env) {
		case EnvProduction, "prod":
			env = EnvProduction
			c.level = slog.LevelInfo
			c.format = FormatJSON
		case EnvStaging, "stage":
			env = EnvStaging
			c.level = slog.LevelInfo
			c.format = FormatJSON
		default:
			env = EnvDevelopment
			c.level = slog.LevelDebug
			c.format = FormatPretty
		}
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", env))
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger whose handler also pulls attributes
// from the context of every record through the registered extractors.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOptions
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	case FormatPretty:
		color := cfg.output == os.Stdout || cfg.output == os.Stderr
		if cfg.color != nil {
			color = *cfg.color
		}
		handler = tint.NewHandler(cfg.output, &tint.Options{
			Level:      handlerOpts.Level,
			AddSource:  handlerOpts.AddSource,
			TimeFormat: time.TimeOnly,
			NoColor:    !color,
		})
	default:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(newContextHandler(handler, cfg.extractors...))
}

// Config describes a logger in environment variables.
type Config struct {
	Env     string     `env:"APP_ENV" envDefault:"development"`
	Service string     `env:"SERVICE_NAME" envDefault:"langsync"`
	Level   slog.Level `env:"LOG_LEVEL"`
	Format  string     `env:"LOG_FORMAT"`
}

// NewFromConfig builds a logger from cfg. Level and Format override the
// environment preset when set.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := make([]Option, 0, 3+len(opts))
	configOpts = append(configOpts, WithEnvironment(cfg.Env, cfg.Service))
	if cfg.Level != 0 {
		configOpts = append(configOpts, WithLevel(cfg.Level))
	}
	if cfg.Format != "" {
		configOpts = append(configOpts, WithFormat(Format(cfg.Format)))
	}
	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}
