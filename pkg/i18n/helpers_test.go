package i18n_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/i18n"
)

func testBundles() i18n.MapLoader {
	return i18n.MapLoader{
		"en": {
			"translation": {
				"welcome":     "Hello, {{name}}!",
				"items_zero":  "No items",
				"items_one":   "{{count}} item",
				"items_other": "{{count}} items",
				"apples": map[string]any{
					"one":   "{{count}} apple",
					"other": "{{count}} apples",
				},
				"nested":  map[string]any{"key": "Nested value"},
				"only_en": "Only in English",
				"section": map[string]any{"title": "Section"},
			},
			"common": {
				"nav": map[string]any{"home": "Home"},
			},
		},
		"fr": {
			"translation": {
				"welcome":     "Bonjour, {{name}} !",
				"items_one":   "{{count}} article",
				"items_other": "{{count}} articles",
				"nested":      map[string]any{"key": "Valeur imbriquée"},
			},
			"common": {
				"nav": map[string]any{"home": "Accueil"},
			},
		},
		"ar": {
			"translation": {"welcome": "مرحبا {{name}}"},
			"common":      {},
		},
	}
}

func testSettings() i18n.Settings {
	s := i18n.DefaultSettings()
	s.Languages = []string{"en", "fr", "ar"}
	s.Namespaces = []string{"translation", "common"}
	return s
}

func newTestEngine(t *testing.T, opts ...i18n.Option) *i18n.Engine {
	t.Helper()
	e, err := i18n.NewEngine(context.Background(), testBundles(), testSettings(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// countingLoader counts Load calls per language.
type countingLoader struct {
	next  i18n.ResourceLoader
	total atomic.Int64
}

func (l *countingLoader) Load(ctx context.Context, lang, ns string) (map[string]any, error) {
	l.total.Add(1)
	return l.next.Load(ctx, lang, ns)
}
