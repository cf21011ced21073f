package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/langsync/pkg/logger"
)

// T translates key in the resolved language.
// Arguments are key-value pairs substituted into "{{name}}" placeholders:
//
//	// With translation "welcome": "Hello, {{name}}!"
//	msg := engine.T("welcome", "name", "John")
//	// Returns: "Hello, John!"
//
// Keys may carry a namespace prefix ("common:nav.home") and address nested
// values with dots. Missing keys are looked up in the fallback language and
// finally returned as-is, unless WithFallbackToKey(false) is set.
func (e *Engine) T(key string, args ...string) string {
	return e.translate(e.ResolvedLanguage(), key, args)
}

// Tl translates key in the given language instead of the resolved one.
func (e *Engine) Tl(lang, key string, args ...string) string {
	return e.translate(e.resolveOrFallback(lang), key, args)
}

// Tc translates a key using language from context
// Uses middleware-injected language from the request context
func (e *Engine) Tc(ctx context.Context, key string, args ...string) string {
	return e.Tl(GetLocale(ctx), key, args...)
}

// Td translates a key with a default fallback if not found
// Provides an explicit fallback rather than using the key itself
func (e *Engine) Td(key, defaultValue string, args ...string) string {
	val, ok := e.lookup(e.ResolvedLanguage(), []string{key})
	if !ok {
		return interpolate(defaultValue, args)
	}
	return interpolate(val, args)
}

// N translates a key with pluralization in the resolved language.
// Plural forms are looked up as "key_zero", "key_one" and "key_other"
// (nested "key.zero" style keys are accepted too). n is exposed as {{count}}
// unless a count argument is given.
//
//	// "items_one": "{{count}} item", "items_other": "{{count}} items"
//	engine.N("items", 5) // "5 items"
func (e *Engine) N(key string, n int, args ...string) string {
	return e.plural(e.ResolvedLanguage(), key, n, args)
}

// Nc translates a plural key using language from context
func (e *Engine) Nc(ctx context.Context, key string, n int, args ...string) string {
	return e.plural(e.resolveOrFallback(GetLocale(ctx)), key, n, args)
}

// HasTranslation reports whether key resolves to a string in the resolved
// language itself, without fallback.
func (e *Engine) HasTranslation(key string) bool {
	ns, path := e.splitKey(key)
	bundle, ok := e.store.get(e.ResolvedLanguage(), ns)
	if !ok {
		return false
	}
	_, ok = stringValue(getTranslation(bundle, path))
	return ok
}

// ExportJSON returns the bundle of a namespace as JSON, loading it if needed.
// Useful as the resource backend for client-side translation.
func (e *Engine) ExportJSON(ctx context.Context, lang, ns string) ([]byte, error) {
	norm := normalizeCode(lang)
	if !slices.Contains(e.settings.Languages, norm) {
		return nil, &ErrLanguageNotSupported{Lang: lang}
	}
	if !slices.Contains(e.settings.Namespaces, ns) {
		return nil, fmt.Errorf("%w: %s/%s", ErrBundleNotFound, norm, ns)
	}

	if err := e.store.load(ctx, norm, []string{ns}); err != nil {
		return nil, err
	}
	bundle, _ := e.store.get(norm, ns)

	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}

func (e *Engine) resolveOrFallback(lang string) string {
	if m := e.matcher.match(lang); m != "" {
		return m
	}
	return e.settings.FallbackLanguage
}

func (e *Engine) translate(lang, key string, args []string) string {
	val, ok := e.lookup(lang, []string{key})
	if !ok {
		return e.missing(lang, key, args)
	}
	return interpolate(val, args)
}

func (e *Engine) plural(lang, key string, n int, args []string) string {
	var candidates []string
	switch n {
	case 0:
		candidates = []string{key + "_zero", key + ".zero", key + "_other", key + ".other", key}
	case 1:
		candidates = []string{key + "_one", key + ".one", key}
	default:
		candidates = []string{key + "_other", key + ".other", key}
	}

	if !hasArg(args, "count") {
		args = append(slices.Clone(args), "count", strconv.Itoa(n))
	}

	val, ok := e.lookup(lang, candidates)
	if !ok {
		return e.missing(lang, key, args)
	}
	return interpolate(val, args)
}

// lookup tries every candidate key in lang, then in the fallback language.
func (e *Engine) lookup(lang string, keys []string) (string, bool) {
	langs := []string{lang}
	if lang != e.settings.FallbackLanguage {
		langs = append(langs, e.settings.FallbackLanguage)
	}

	for _, l := range langs {
		for _, key := range keys {
			ns, path := e.splitKey(key)
			bundle, ok := e.store.get(l, ns)
			if !ok {
				continue
			}
			if s, ok := stringValue(getTranslation(bundle, path)); ok {
				return s, true
			}
		}
	}
	return "", false
}

func (e *Engine) missing(lang, key string, args []string) string {
	ns, path := e.splitKey(key)
	if e.missingLogMode {
		e.logger.Warn("Translation not found",
			logger.Language(lang), logger.Namespace(ns), slog.String("key", path))
	}
	if e.fallbackToKey {
		return interpolate(path, args)
	}
	return ""
}

// splitKey separates a "ns:key" prefix when ns is a configured namespace.
func (e *Engine) splitKey(key string) (string, string) {
	if ns, rest, ok := strings.Cut(key, ":"); ok && slices.Contains(e.settings.Namespaces, ns) {
		return ns, rest
	}
	return e.settings.DefaultNamespace, key
}

// getTranslation traverses a nested map using dot-separated keys.
// A flat key containing dots is matched before traversal.
func getTranslation(m map[string]any, key string) (any, bool) {
	if val, ok := m[key]; ok {
		return val, true
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = val.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

func stringValue(val any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func hasArg(args []string, name string) bool {
	for i := 0; i < len(args)-1; i += 2 {
		if args[i] == name {
			return true
		}
	}
	return false
}

// buildParams converts a slice of strings (expected as key, value, key, value, …)
// into a map. If the number of arguments is odd, the last one is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

// Regex to find named parameters in the form {{name}}
var paramRegex = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// interpolate substitutes "{{name}}" placeholders; unknown ones are kept.
func interpolate(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	params := buildParams(args)
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := paramRegex.FindStringSubmatch(match)[1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}
