package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/i18n"
)

func TestMapLoader(t *testing.T) {
	t.Parallel()
	loader := testBundles()

	t.Run("existing bundle", func(t *testing.T) {
		t.Parallel()
		bundle, err := loader.Load(context.Background(), "fr", "translation")
		require.NoError(t, err)
		assert.Equal(t, "Bonjour, {{name}} !", bundle["welcome"])
	})

	t.Run("missing bundle", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(context.Background(), "de", "translation")
		assert.ErrorIs(t, err, i18n.ErrBundleNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, "en", "translation")
		assert.ErrorIs(t, err, i18n.ErrLoadingBundleCancelled)
	})
}

func TestFSLoader(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/translation.json": {Data: []byte(`{"greeting": "Hello"}`)},
		"fr/translation.yaml": {Data: []byte("greeting: Bonjour\n")},
		"de/translation.toml": {Data: []byte(`greeting = "Hallo"`)},
		"es/translation.json": {Data: []byte(`{"greeting": `)},
	}
	loader := i18n.NewFSLoader(fsys)

	tests := []struct {
		lang string
		want string
	}{
		{"en", "Hello"},
		{"fr", "Bonjour"},
		{"de", "Hallo"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			bundle, err := loader.Load(context.Background(), tt.lang, "translation")
			require.NoError(t, err)
			assert.Equal(t, tt.want, bundle["greeting"])
		})
	}

	t.Run("missing namespace", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(context.Background(), "en", "common")
		assert.ErrorIs(t, err, i18n.ErrBundleNotFound)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(context.Background(), "es", "translation")
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(context.Background(), "../en", "translation")
		assert.ErrorIs(t, err, i18n.ErrBundleNotFound)

		_, err = loader.Load(context.Background(), "en", "../fr/translation")
		assert.ErrorIs(t, err, i18n.ErrBundleNotFound)
	})

	t.Run("restricted parsers", func(t *testing.T) {
		t.Parallel()
		jsonOnly := i18n.NewFSLoader(fsys, i18n.NewJSONParser())
		_, err := jsonOnly.Load(context.Background(), "fr", "translation")
		assert.ErrorIs(t, err, i18n.ErrBundleNotFound)
	})
}

func TestDirectoryLoader(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "fr"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "fr", "common.yml"), []byte("nav:\n  home: Accueil\n"), 0o644))

	loader := i18n.NewDirectoryLoader(root, i18n.NewYAMLParser())

	_, err := loader.Load(context.Background(), "en", "common")
	require.ErrorIs(t, err, i18n.ErrBundleNotFound)

	bundle, err := loader.Load(context.Background(), "fr", "common")
	require.NoError(t, err)

	nav, ok := bundle["nav"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Accueil", nav["home"])
}
