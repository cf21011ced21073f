package i18n

import (
	"errors"
	"fmt"
)

// Package errors use descriptive messages for debugging while avoiding implementation details.
// Context cancellation errors are separated to allow proper error handling in timeouts.
var (
	// Engine
	ErrNilLoader        = errors.New("resource loader is nil")
	ErrNoLanguages      = errors.New("no supported languages configured")
	ErrChangeSuperseded = errors.New("language change superseded by a newer request")
	ErrEngineClosed     = errors.New("engine is closed")

	// JSON operations
	ErrFailedToMarshalJSON  = errors.New("failed to marshal translations to JSON")
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	// YAML operations
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	// TOML operations
	ErrTOMLParsingCancelled = errors.New("toml parsing cancelled")
	ErrFailedToParseTOML    = errors.New("failed to parse TOML content")

	// Bundle loading
	ErrLoadingBundleCancelled = errors.New("loading translation bundle cancelled")
	ErrBundleNotFound         = errors.New("translation bundle not found")
	ErrFailedToReadFile       = errors.New("failed to read translation file")
	ErrFailedToParseFile      = errors.New("failed to parse translation file")
	ErrFailedToLoadLanguage   = errors.New("failed to load language")
)

// ErrLanguageNotSupported indicates that the requested language is not available
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
