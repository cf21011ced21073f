// Package redis persists client language choices in Redis so that every
// process serving a client reads the same value.
//
// Connect dials the server with retries and returns a go-redis client;
// Healthcheck turns that client into a readiness probe. A Store hands out one
// Jar per client id. A Jar implements cookie.Jar on top of a Redis hash:
// each entry keeps its value and the path it was written with, and the hash
// expires with the MaxAge of the latest write.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	jar := redis.NewStoreFromConfig(client, cfg).Jar(clientID)
//	_ = jar.Set(ctx, "i18next", "fr", cookie.WithMaxAge(langsync.CookieMaxAge))
//
// Errors are sentinel values joined with the go-redis cause.
package redis
