package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync"
	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/httpserver"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
	"github.com/dmitrymomot/langsync/pkg/requestid"
)

type response[T any] struct {
	Data  T            `json:"data"`
	Error *errorDetail `json:"error"`
}

func testLocales(t *testing.T) fs.FS {
	t.Helper()
	locales, err := localesFS("")
	require.NoError(t, err)
	return locales
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	locales := testLocales(t)

	settings := i18n.DefaultSettings()
	langs, err := discoverLanguages(locales)
	require.NoError(t, err)
	namespaces, err := discoverNamespaces(locales, settings.FallbackLanguage)
	require.NoError(t, err)
	settings.Languages = langs
	settings.Namespaces = namespaces

	engine, err := i18n.NewEngine(context.Background(), i18n.NewFSLoader(locales), settings, i18n.WithNoLogging())
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	return &app{
		engine:       engine,
		cookies:      cookie.New(),
		clientCookie: "langsync_client",
		log:          logger.Discard(),
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) response[T] {
	t.Helper()
	var out response[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func setCookie(rec *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	locales := testLocales(t)

	langs, err := discoverLanguages(locales)
	require.NoError(t, err)
	assert.Equal(t, []string{"ar", "en", "fr"}, langs)

	namespaces, err := discoverNamespaces(locales, "fr")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"common", "translation"}, namespaces)

	_, err = discoverNamespaces(locales, "de")
	assert.Error(t, err)
}

func TestGreeting(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	tests := []struct {
		name      string
		path      string
		header    map[string]string
		cookie    string
		wantLang  string
		wantDir   string
		greeting  string
		available string
	}{
		{
			name:      "fallback",
			path:      "/",
			wantLang:  "en",
			wantDir:   i18n.DirLTR,
			greeting:  "Hello, guest!",
			available: "3 languages available",
		},
		{
			name:      "path segment",
			path:      "/fr/",
			header:    map[string]string{"Accept-Language": "ar"},
			cookie:    "en",
			wantLang:  "fr",
			wantDir:   i18n.DirLTR,
			greeting:  "Bonjour, invité !",
			available: "3 langues disponibles",
		},
		{
			name:     "regional path segment",
			path:     "/fr-CA/?name=Ann",
			wantLang: "fr",
			wantDir:  i18n.DirLTR,
			greeting: "Bonjour, Ann !",
		},
		{
			name:     "page tag beats cookie",
			path:     "/",
			header:   map[string]string{"Language": "ar"},
			cookie:   "fr",
			wantLang: "ar",
			wantDir:  i18n.DirRTL,
		},
		{
			name:     "cookie beats accept language",
			path:     "/",
			header:   map[string]string{"Accept-Language": "ar"},
			cookie:   "fr",
			wantLang: "fr",
			wantDir:  i18n.DirLTR,
		},
		{
			name:     "accept language",
			path:     "/?name=Sam",
			header:   map[string]string{"Accept-Language": "de-DE, ar;q=0.8"},
			wantLang: "ar",
			wantDir:  i18n.DirRTL,
			greeting: "مرحبا، Sam!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: tt.cookie})
			}

			rec := serve(h, r)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantLang, rec.Header().Get("Content-Language"))

			body := decode[page](t, rec)
			assert.Equal(t, tt.wantLang, body.Data.Language)
			assert.Equal(t, tt.wantDir, body.Data.Dir)
			assert.NotEmpty(t, body.Data.Title)
			if tt.greeting != "" {
				assert.Equal(t, tt.greeting, body.Data.Greeting)
			}
			if tt.available != "" {
				assert.Equal(t, tt.available, body.Data.Available)
			}

			_, ok := setCookie(rec, i18n.DefaultCookieName)
			assert.False(t, ok, "rendering never persists")
		})
	}

	t.Run("unsupported path segment", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/xx/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		body := decode[page](t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "unsupported_language", body.Error.Code)
		assert.Equal(t, "Language xx is not supported", body.Error.Message)
	})
}

func TestChangeLanguage(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	post := func(body, persisted string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/language", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		if persisted != "" {
			r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: persisted})
		}
		return serve(h, r)
	}

	t.Run("persists requested language", func(t *testing.T) {
		t.Parallel()
		rec := post(`{"language":"ar"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ar", rec.Header().Get("Content-Language"))

		c, ok := setCookie(rec, i18n.DefaultCookieName)
		require.True(t, ok)
		assert.Equal(t, "ar", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.False(t, c.HttpOnly)

		body := decode[changeResult](t, rec)
		assert.Equal(t, "ar", body.Data.Language)
		assert.Equal(t, i18n.DirRTL, body.Data.Dir)
		assert.NotEmpty(t, body.Data.Message)
	})

	t.Run("requested wins over persisted", func(t *testing.T) {
		t.Parallel()
		rec := post(`{"language":"en"}`, "fr")
		require.Equal(t, http.StatusOK, rec.Code)

		c, ok := setCookie(rec, i18n.DefaultCookieName)
		require.True(t, ok)
		assert.Equal(t, "en", c.Value)
		assert.Equal(t, "en", decode[changeResult](t, rec).Data.Language)
	})

	t.Run("no write when already persisted", func(t *testing.T) {
		t.Parallel()
		rec := post(`{"language":"fr"}`, "fr")
		require.Equal(t, http.StatusOK, rec.Code)

		_, ok := setCookie(rec, i18n.DefaultCookieName)
		assert.False(t, ok)
		assert.Equal(t, "fr", decode[changeResult](t, rec).Data.Language)
	})

	t.Run("regional code maps to supported", func(t *testing.T) {
		t.Parallel()
		rec := post(`{"language":"fr-CA"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		c, ok := setCookie(rec, i18n.DefaultCookieName)
		require.True(t, ok)
		assert.Equal(t, "fr", c.Value)
	})

	t.Run("bad body", func(t *testing.T) {
		t.Parallel()
		rec := post(`not json`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode[changeResult](t, rec).Error.Code)
	})

	t.Run("unsupported language", func(t *testing.T) {
		t.Parallel()
		rec := post(`{"language":"xx"}`, "fr")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decode[changeResult](t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "La langue xx n'est pas prise en charge", body.Error.Message)
	})

	t.Run("cancelled request does not settle", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := httptest.NewRequestWithContext(ctx, http.MethodPost, "/language", strings.NewReader(`{"language":"ar"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := serve(h, r)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode[changeResult](t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "not_settled", body.Error.Code)
	})
}

func TestExportBundle(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	t.Run("bundle from toml", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/locales/fr/common.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var bundle map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&bundle))
		assert.Equal(t, "Paramètres de langue", bundle["title"])
	})

	t.Run("nested bundle", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/locales/ar/translation.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var bundle map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&bundle))
		assert.IsType(t, map[string]any{}, bundle["errors"])
	})

	for _, p := range []string{"/locales/xx/translation.json", "/locales/en/missing.json"} {
		t.Run("not found "+p, func(t *testing.T) {
			t.Parallel()
			rec := serve(h, httptest.NewRequest(http.MethodGet, p, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "bundle_not_found", decode[map[string]any](t, rec).Error.Code)
		})
	}
}

func TestListLanguages(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/languages", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[[]languageInfo](t, rec)
	require.Len(t, body.Data, 3)

	byCode := make(map[string]languageInfo, len(body.Data))
	for _, l := range body.Data {
		byCode[l.Code] = l
	}
	assert.True(t, byCode["en"].Fallback)
	assert.Equal(t, i18n.DirRTL, byCode["ar"].Dir)
	assert.Equal(t, "français", byCode["fr"].Name)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	h := a.routes(httpserver.Check{Name: "bundles", Probe: bundleProbe(a.engine)})

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var report httpserver.HealthReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "ok", report.Checks["bundles"])
}

func TestMirrorJar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes to both jars", func(t *testing.T) {
		t.Parallel()
		primary := cookie.NewMemoryJar()
		mirror := cookie.NewMemoryJar()
		jar := mirrorJar{primary: primary, mirror: mirror}

		require.NoError(t, jar.Set(ctx, "i18next", "ar"))
		v, _ := primary.Get(ctx, "i18next")
		assert.Equal(t, "ar", v)
		v, _ = mirror.Get(ctx, "i18next")
		assert.Equal(t, "ar", v)

		v, ok := jar.Get(ctx, "i18next")
		assert.True(t, ok)
		assert.Equal(t, "ar", v)
	})

	t.Run("restores missing cookie", func(t *testing.T) {
		t.Parallel()
		primary := cookie.NewMemoryJar()
		mirror := cookie.NewMemoryJar()
		require.NoError(t, primary.Set(ctx, "i18next", "fr"))
		jar := mirrorJar{primary: primary, mirror: mirror}

		_, ok := jar.Get(ctx, "i18next")
		assert.False(t, ok)

		assert.True(t, langsync.Persist(ctx, jar, "i18next", "fr", nil))
		v, ok := mirror.Get(ctx, "i18next")
		assert.True(t, ok)
		assert.Equal(t, "fr", v)
	})

	t.Run("restores stale store", func(t *testing.T) {
		t.Parallel()
		primary := cookie.NewMemoryJar()
		mirror := cookie.NewMemoryJar()
		require.NoError(t, primary.Set(ctx, "i18next", "ar"))
		require.NoError(t, mirror.Set(ctx, "i18next", "fr"))
		jar := mirrorJar{primary: primary, mirror: mirror}

		assert.True(t, langsync.Persist(ctx, jar, "i18next", "fr", nil))
		v, _ := primary.Get(ctx, "i18next")
		assert.Equal(t, "fr", v)
	})

	t.Run("skips write when in step", func(t *testing.T) {
		t.Parallel()
		primary := cookie.NewMemoryJar()
		mirror := cookie.NewMemoryJar()
		jar := mirrorJar{primary: primary, mirror: mirror}
		require.NoError(t, jar.Set(ctx, "i18next", "fr"))

		assert.False(t, langsync.Persist(ctx, jar, "i18next", "fr", nil))
		assert.Equal(t, 1, primary.Writes())
		assert.Equal(t, 1, mirror.Writes())
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set(requestid.Header, "trace-1")
	assert.Equal(t, "trace-1", serve(h, r).Header().Get(requestid.Header))
}
