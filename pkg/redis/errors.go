package redis

import "errors"

var (
	// Connect
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")

	// Jar
	ErrEmptyClientID = errors.New("empty client id")
	ErrFailedToWrite = errors.New("failed to write jar entry")
)
