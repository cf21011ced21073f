package redis

import "time"

// Config describes the Redis connection and jar layout in environment variables.
type Config struct {
	// ConnectionURL has the form redis://:password@host:6379/0.
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix is prepended to the client id to build the hash key of a jar.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"langsync:jar:"`
}
