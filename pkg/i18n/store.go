package i18n

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/langsync/pkg/async"
)

// bundleStore caches loaded bundles by language and namespace.
// It is shared between an engine and all of its instances.
type bundleStore struct {
	loader  ResourceLoader
	mu      sync.RWMutex
	bundles map[string]map[string]map[string]any
}

func newBundleStore(loader ResourceLoader) *bundleStore {
	return &bundleStore{
		loader:  loader,
		bundles: make(map[string]map[string]map[string]any),
	}
}

func (s *bundleStore) get(lang, ns string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bundles[lang][ns]
	return b, ok
}

func (s *bundleStore) missing(lang string, namespaces []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, ns := range namespaces {
		if _, ok := s.bundles[lang][ns]; !ok {
			out = append(out, ns)
		}
	}
	return out
}

func (s *bundleStore) put(lang, ns string, bundle map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bundles[lang] == nil {
		s.bundles[lang] = make(map[string]map[string]any)
	}
	s.bundles[lang][ns] = bundle
}

// load fetches the namespaces of lang that are not cached yet, concurrently.
// Successfully loaded namespaces are cached even when another one fails.
func (s *bundleStore) load(ctx context.Context, lang string, namespaces []string) error {
	missing := s.missing(lang, namespaces)
	if len(missing) == 0 {
		return nil
	}

	futures := make([]*async.Future[string], 0, len(missing))
	for _, ns := range missing {
		futures = append(futures, async.Async(ctx, ns, func(ctx context.Context, ns string) (string, error) {
			bundle, err := s.loader.Load(ctx, lang, ns)
			if err != nil {
				return ns, fmt.Errorf("%s/%s: %w", lang, ns, err)
			}
			if bundle == nil {
				bundle = make(map[string]any)
			}
			s.put(lang, ns, bundle)
			return ns, nil
		}))
	}

	if _, err := async.WaitAll(futures...); err != nil {
		return errors.Join(ErrFailedToLoadLanguage, err)
	}
	return nil
}
