package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/langsync/pkg/cookie"
)

// pathSuffix marks the hash field holding the path a value was written with.
const pathSuffix = ":path"

// Store hands out cookie jars persisted in Redis, one hash per client.
// It lets every process serving a client see the same persisted language.
type Store struct {
	db       redis.UniversalClient
	prefix   string
	defaults cookie.Options
}

// NewStore creates a store over db. Hash keys are prefix + client id.
// opts set the defaults applied to every write, on top of Path "/".
func NewStore(db redis.UniversalClient, prefix string, opts ...cookie.Option) *Store {
	return &Store{
		db:       db,
		prefix:   prefix,
		defaults: cookie.Apply(cookie.Options{Path: "/"}, opts...),
	}
}

// NewStoreFromConfig creates a store using cfg.KeyPrefix.
func NewStoreFromConfig(db redis.UniversalClient, cfg Config, opts ...cookie.Option) *Store {
	return NewStore(db, cfg.KeyPrefix, opts...)
}

// Jar returns the jar of a client.
func (s *Store) Jar(clientID string) *Jar {
	return &Jar{store: s, clientID: clientID, key: s.prefix + clientID}
}

// Forget removes everything persisted for a client.
func (s *Store) Forget(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrEmptyClientID
	}
	return s.db.Del(ctx, s.prefix+clientID).Err()
}

// Jar is a cookie.Jar backed by a Redis hash. Each name is a field; the path
// it was written with is kept next to it. A positive MaxAge expires the whole
// hash, a negative one removes the entry.
type Jar struct {
	store    *Store
	clientID string
	key      string
}

// Get returns nothing for empty names and missing values; Redis errors read as missing.
func (j *Jar) Get(ctx context.Context, name string) (string, bool) {
	if name == "" || j.clientID == "" {
		return "", false
	}
	val, err := j.store.db.HGet(ctx, j.key, name).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Path returns the path the entry for name was written with.
func (j *Jar) Path(ctx context.Context, name string) (string, bool) {
	if name == "" || j.clientID == "" {
		return "", false
	}
	val, err := j.store.db.HGet(ctx, j.key, name+pathSuffix).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set implements cookie.Jar.
func (j *Jar) Set(ctx context.Context, name, value string, opts ...cookie.Option) error {
	if name == "" {
		return cookie.ErrEmptyName
	}
	if j.clientID == "" {
		return ErrEmptyClientID
	}

	options := cookie.Apply(j.store.defaults, opts...)
	_, err := j.store.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if options.MaxAge < 0 {
			pipe.HDel(ctx, j.key, name, name+pathSuffix)
			return nil
		}
		pipe.HSet(ctx, j.key, name, value, name+pathSuffix, options.Path)
		if options.MaxAge > 0 {
			pipe.Expire(ctx, j.key, time.Duration(options.MaxAge)*time.Second)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrFailedToWrite, err)
	}
	return nil
}
