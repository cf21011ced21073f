package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// ResourceLoader loads the bundle of one namespace in one language.
// Bundles are nested maps; nested keys are addressed with dot notation.
type ResourceLoader interface {
	Load(ctx context.Context, lang, ns string) (map[string]any, error)
}

// LoaderFunc adapts a function to the ResourceLoader interface.
type LoaderFunc func(ctx context.Context, lang, ns string) (map[string]any, error)

// Load implements the ResourceLoader interface
func (f LoaderFunc) Load(ctx context.Context, lang, ns string) (map[string]any, error) {
	return f(ctx, lang, ns)
}

// MapLoader serves bundles from memory, keyed by language then namespace.
type MapLoader map[string]map[string]map[string]any

// Load implements the ResourceLoader interface
func (m MapLoader) Load(ctx context.Context, lang, ns string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingBundleCancelled, err)
	}
	bundle, ok := m[lang][ns]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrBundleNotFound, lang, ns)
	}
	return bundle, nil
}

// FSLoader reads bundles laid out as <lang>/<ns>.<ext> from a file system,
// typically an embed.FS. The first parser whose file exists wins.
type FSLoader struct {
	fsys    fs.FS
	parsers []Parser
}

// NewFSLoader creates a loader over fsys. Without parsers, JSON, YAML and TOML
// files are recognised, in that order.
func NewFSLoader(fsys fs.FS, parsers ...Parser) *FSLoader {
	if len(parsers) == 0 {
		parsers = []Parser{NewJSONParser(), NewYAMLParser(), NewTOMLParser()}
	}
	return &FSLoader{fsys: fsys, parsers: parsers}
}

// NewDirectoryLoader creates a loader reading <root>/<lang>/<ns>.<ext> from disk.
func NewDirectoryLoader(root string, parsers ...Parser) *FSLoader {
	return NewFSLoader(os.DirFS(root), parsers...)
}

// Load implements the ResourceLoader interface
func (l *FSLoader) Load(ctx context.Context, lang, ns string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingBundleCancelled, err)
	}

	for _, p := range l.parsers {
		for _, ext := range p.Extensions() {
			name := path.Join(lang, ns+"."+ext)
			if !fs.ValidPath(name) || path.Dir(name) != lang {
				return nil, fmt.Errorf("%w: %s/%s", ErrBundleNotFound, lang, ns)
			}

			content, err := fs.ReadFile(l.fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, errors.Join(ErrFailedToReadFile, err)
			}

			bundle, err := p.Parse(ctx, content)
			if err != nil {
				return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
			}
			return bundle, nil
		}
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrBundleNotFound, lang, ns)
}
