package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Parser decodes a single translation bundle: the keys of one namespace in one language.
type Parser interface {
	// Parse decodes content into a nested map. Empty documents yield an empty map.
	Parse(ctx context.Context, content []byte) (map[string]any, error)

	// SupportsFileExtension reports whether ext, with or without the leading
	// dot, is handled by the parser.
	SupportsFileExtension(ext string) bool

	// Extensions lists the file extensions to look for, without the leading dot,
	// in lookup order.
	Extensions() []string
}

// JSONParser reads bundles from .json files.
type JSONParser struct{}

// YAMLParser reads bundles from .yaml and .yml files.
type YAMLParser struct{}

// TOMLParser reads bundles from .toml files. Nested keys map to tables:
//
//	greeting = "Hello, {{name}}!"
//
//	[items]
//	one = "{{count}} item"
//	other = "{{count}} items"
type TOMLParser struct{}

// Parser constructors.
func NewJSONParser() *JSONParser { return &JSONParser{} }
func NewYAMLParser() *YAMLParser { return &YAMLParser{} }
func NewTOMLParser() *TOMLParser { return &TOMLParser{} }

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	return decodeBundle(ctx, content, ErrJSONParsingCancelled, ErrFailedToParseJSON, json.Unmarshal)
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	return decodeBundle(ctx, content, ErrYAMLParsingCancelled, ErrFailedToParseYAML, yaml.Unmarshal)
}

func (p *TOMLParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	return decodeBundle(ctx, content, ErrTOMLParsingCancelled, ErrFailedToParseTOML, toml.Unmarshal)
}

func (p *JSONParser) Extensions() []string { return []string{"json"} }
func (p *YAMLParser) Extensions() []string { return []string{"yaml", "yml"} }
func (p *TOMLParser) Extensions() []string { return []string{"toml"} }

func (p *JSONParser) SupportsFileExtension(ext string) bool { return hasExtension(p, ext) }
func (p *YAMLParser) SupportsFileExtension(ext string) bool { return hasExtension(p, ext) }
func (p *TOMLParser) SupportsFileExtension(ext string) bool { return hasExtension(p, ext) }

// NewParserForFile returns a parser based on the file extension, or nil for unknown formats.
func NewParserForFile(filename string) Parser {
	ext := path.Ext(filename)
	for _, p := range []Parser{NewJSONParser(), NewYAMLParser(), NewTOMLParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

func hasExtension(p Parser, ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(p.Extensions(), ext)
}

func decodeBundle(ctx context.Context, content []byte, errCancelled, errParse error, unmarshal func([]byte, any) error) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errCancelled, err)
	}

	data := make(map[string]any)
	if err := unmarshal(content, &data); err != nil {
		return nil, errors.Join(errParse, err)
	}
	if data == nil { // JSON null
		return make(map[string]any), nil
	}
	return normalizeMap(data), nil
}

// normalizeMap converts map[any]any values produced by some decoders into map[string]any,
// recursively, so lookups only deal with one map type.
func normalizeMap(in map[string]any) map[string]any {
	for k, v := range in {
		in[k] = normalizeValue(v)
	}
	return in
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeValue(item)
			}
		}
		return out
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	default:
		return v
	}
}
