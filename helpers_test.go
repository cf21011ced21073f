package langsync_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/async"
	"github.com/dmitrymomot/langsync/pkg/i18n"
)

func testEngine(t *testing.T, opts ...i18n.Option) *i18n.Engine {
	t.Helper()

	loader := i18n.MapLoader{
		"en": {"translation": {"greeting": "Hello"}},
		"fr": {"translation": {"greeting": "Bonjour"}},
		"de": {"translation": {"greeting": "Hallo"}},
	}
	settings := i18n.DefaultSettings()
	settings.Languages = []string{"en", "fr", "de"}

	e, err := i18n.NewEngine(context.Background(), loader, settings, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// recordingEngine counts ChangeLanguage calls on top of a real engine.
type recordingEngine struct {
	*i18n.Engine

	mu      sync.Mutex
	changes []string
}

func (r *recordingEngine) ChangeLanguage(ctx context.Context, lang string) *async.Future[string] {
	r.mu.Lock()
	r.changes = append(r.changes, lang)
	r.mu.Unlock()
	return r.Engine.ChangeLanguage(ctx, lang)
}

func (r *recordingEngine) Changes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.changes...)
}
