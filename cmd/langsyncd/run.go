package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/httpserver"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
	"github.com/dmitrymomot/langsync/pkg/redis"
	"github.com/dmitrymomot/langsync/pkg/requestid"
)

//go:embed locales
var embeddedLocales embed.FS

func run(ctx context.Context, cfg appConfig) error {
	log := logger.NewFromConfig(cfg.Logger, logger.WithContextExtractors(
		i18n.LogExtractor(),
		requestid.LogExtractor(),
	))
	logger.SetAsDefault(log)

	locales, err := localesFS(cfg.Service.LocalesDir)
	if err != nil {
		return err
	}
	settings, err := discoverSettings(cfg.I18n, locales)
	if err != nil {
		return err
	}

	engine, err := i18n.NewEngine(ctx, i18n.NewFSLoader(locales), settings,
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(true),
	)
	if err != nil {
		return fmt.Errorf("create translation engine: %w", err)
	}
	defer engine.Close()

	a := &app{
		engine:       engine,
		cookies:      cookie.NewFromConfig(cfg.Cookie),
		clientCookie: cfg.Service.ClientCookie,
		log:          log,
	}
	checks := []httpserver.Check{{Name: "bundles", Probe: bundleProbe(engine)}}

	if cfg.Service.RedisEnabled {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		a.jars = redis.NewStoreFromConfig(client, cfg.Redis)
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	}

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, a.routes(checks...))
}

func localesFS(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(embeddedLocales, "locales")
}

// discoverSettings fills languages and namespaces that are not set in the
// environment from the layout of the locales directory.
func discoverSettings(settings i18n.Settings, locales fs.FS) (i18n.Settings, error) {
	var err error
	if _, ok := os.LookupEnv("I18N_LANGUAGES"); !ok {
		if settings.Languages, err = discoverLanguages(locales); err != nil {
			return settings, err
		}
	}
	if _, ok := os.LookupEnv("I18N_NAMESPACES"); !ok {
		lang := settings.FallbackLanguage
		if lang == "" {
			lang = i18n.DefaultLanguage
		}
		if settings.Namespaces, err = discoverNamespaces(locales, lang); err != nil {
			return settings, err
		}
	}
	return settings, nil
}

// discoverLanguages lists the top-level directories of fsys that are valid
// language tags.
func discoverLanguages(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := language.Parse(e.Name()); err == nil {
			langs = append(langs, e.Name())
		}
	}
	if len(langs) == 0 {
		return nil, i18n.ErrNoLanguages
	}
	return langs, nil
}

// discoverNamespaces lists the bundle names found in the directory of lang.
func discoverNamespaces(fsys fs.FS, lang string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, lang)
	if err != nil {
		return nil, fmt.Errorf("read %s bundles: %w", lang, err)
	}

	namespaces := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ns := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if ns != "" && !slices.Contains(namespaces, ns) {
			namespaces = append(namespaces, ns)
		}
	}
	return namespaces, nil
}

// bundleProbe reports whether the default bundle of the fallback language
// can still be loaded.
func bundleProbe(engine *i18n.Engine) func(context.Context) error {
	settings := engine.Settings()
	return func(ctx context.Context) error {
		_, err := engine.ExportJSON(ctx, settings.FallbackLanguage, settings.DefaultNamespace)
		return err
	}
}
