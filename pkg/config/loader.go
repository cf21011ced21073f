package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option customises a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix      string
	envFiles    []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env key of the struct.
// Configs loaded with different prefixes are cached independently.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given dotenv files before parsing.
// Values already present in the process environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// WithEnvironment parses from the given map instead of the process environment.
// Results are never cached, which makes it the option of choice in tests.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = vars
	}
}

type configCache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into the provided configuration struct.
// Each (type, prefix) pair is parsed once per process; later calls get the cached copy.
//
// Example:
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environment != nil {
		return parse(v, o)
	}

	defaultEnvLoaded.Do(func() {
		// the default .env file is optional
		_ = godotenv.Load()
	})
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	key := cacheKey[T](o.prefix)

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := parse(v, o); err != nil {
		return err
	}
	globalCache.values[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func parse[T any](v *T, o loadOptions) error {
	envOpts := env.Options{Prefix: o.prefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func cacheKey[T any](prefix string) string {
	return prefix + "|" + reflect.TypeFor[T]().String()
}
