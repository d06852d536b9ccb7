// Package presets translates between literal style values and symbolic
// references to design-token presets declared in the settings tree.
//
// A style value such as "#ff0000" that matches the palette entry with slug
// "primary" is stored as "var:preset|color|primary". Reading the style back
// turns the reference into the literal again. Values that match no preset
// pass through both directions unchanged.
package presets

import (
	"strings"

	layering "github.com/goliatone/go-global-styles/layering"
)

const (
	userValuePrefix  = "var:"
	themeValuePrefix = "var(--wp--"
	themeValueSuffix = ")"

	// maxDecodeDepth bounds reference chains (a preset whose value is itself
	// a reference) so cyclic declarations cannot loop forever.
	maxDecodeDepth = 16
)

// origins lists preset origins from highest to lowest priority.
var origins = []string{"custom", "theme", "default"}

// Metadata describes one preset family.
type Metadata struct {
	// Path locates the preset lists inside settings, e.g. color.palette.
	Path []string
	// ValueKey names the field carrying the literal value, e.g. "color".
	ValueKey string
	// CSSVarInfix is the family token used in references, e.g. "color".
	CSSVarInfix string
}

// DefaultMetadata returns the preset families recognised by default.
func DefaultMetadata() []Metadata {
	return []Metadata{
		{Path: []string{"color", "palette"}, ValueKey: "color", CSSVarInfix: "color"},
		{Path: []string{"color", "gradients"}, ValueKey: "gradient", CSSVarInfix: "gradient"},
		{Path: []string{"color", "duotone"}, ValueKey: "colors", CSSVarInfix: "duotone"},
		{Path: []string{"typography", "fontSizes"}, ValueKey: "size", CSSVarInfix: "font-size"},
		{Path: []string{"typography", "fontFamilies"}, ValueKey: "fontFamily", CSSVarInfix: "font-family"},
		{Path: []string{"spacing", "spacingSizes"}, ValueKey: "size", CSSVarInfix: "spacing"},
	}
}

// DefaultStylePathInfixes maps style paths that accept presets to the family
// infix used when encoding them.
func DefaultStylePathInfixes() map[string]string {
	return map[string]string{
		"color.background":                  "color",
		"color.text":                        "color",
		"elements.link.color.text":          "color",
		"elements.button.color.text":        "color",
		"elements.button.color.background":  "color",
		"elements.heading.color.text":       "color",
		"elements.heading.color.background": "color",
		"color.gradient":                    "gradient",
		"typography.fontSize":               "font-size",
		"typography.fontFamily":             "font-family",
	}
}

// Encoder rewrites literal values into preset references.
type Encoder interface {
	Encode(settings map[string]any, block, stylePath string, value any) any
}

// Decoder materialises preset and custom references into literal values.
type Decoder interface {
	Decode(doc map[string]any, block string, value any) any
}

// Codec combines both directions.
type Codec interface {
	Encoder
	Decoder
}

// Option configures a codec.
type Option func(*codec)

// WithMetadata replaces the preset families.
func WithMetadata(metadata []Metadata) Option {
	return func(c *codec) {
		c.metadata = append([]Metadata(nil), metadata...)
	}
}

// WithStylePathInfixes replaces the style path to infix table.
func WithStylePathInfixes(infixes map[string]string) Option {
	return func(c *codec) {
		c.infixes = make(map[string]string, len(infixes))
		for path, infix := range infixes {
			c.infixes[path] = infix
		}
	}
}

type codec struct {
	metadata []Metadata
	infixes  map[string]string
}

// New constructs a Codec. Without options it uses DefaultMetadata and
// DefaultStylePathInfixes.
func New(opts ...Option) Codec {
	c := &codec{
		metadata: DefaultMetadata(),
		infixes:  DefaultStylePathInfixes(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var defaultCodec = New()

// Default returns the shared codec built from the default tables.
func Default() Codec {
	return defaultCodec
}

// Encode returns a preset reference for value when stylePath accepts presets
// and value equals the value of a preset visible to block. Empty values,
// unknown paths and unmatched values are returned unchanged, so encoding an
// existing reference is a no-op.
func (c *codec) Encode(settings map[string]any, block, stylePath string, value any) any {
	if isEmpty(value) {
		return value
	}
	infix, ok := c.infixes[stylePath]
	if !ok {
		return value
	}
	meta, ok := c.metadataFor(infix)
	if !ok {
		return value
	}
	preset := findPreset(settings, block, meta.Path, meta.ValueKey, value)
	if preset == nil {
		return value
	}
	slug, ok := preset["slug"].(string)
	if !ok || slug == "" {
		return value
	}
	return userValuePrefix + "preset|" + infix + "|" + slug
}

// Decode resolves references found in value against doc, a full document
// with a top-level settings key. Supported forms are {"ref": "a.b"} objects,
// var:preset|family|slug, var(--wp--preset--family--slug), var:custom|a|b and
// var(--wp--custom--a--b). Anything else is returned unchanged.
func (c *codec) Decode(doc map[string]any, block string, value any) any {
	return c.decode(doc, block, value, 0)
}

func (c *codec) decode(doc map[string]any, block string, value any, depth int) any {
	if depth > maxDecodeDepth {
		return value
	}

	variable, isString := value.(string)
	if !isString || variable == "" {
		obj, isObj := value.(map[string]any)
		if !isObj {
			return value
		}
		ref, isRef := obj["ref"].(string)
		if !isRef {
			return value
		}
		resolved, _ := layering.Get(doc, strings.Split(ref, "."))
		if isEmpty(resolved) {
			return resolved
		}
		if nested, ok := resolved.(map[string]any); ok {
			if _, chained := nested["ref"]; chained {
				return resolved
			}
		}
		variable, isString = resolved.(string)
		if !isString {
			return resolved
		}
		value = resolved
	}

	ref, ok := ParseReference(variable)
	if !ok {
		return value
	}
	if ref.Kind == "preset" {
		return c.presetValue(doc, block, value, ref.Path, depth)
	}
	return c.customValue(doc, block, value, ref.Path, depth)
}

func (c *codec) presetValue(doc map[string]any, block string, original any, path []string, depth int) any {
	if len(path) < 2 {
		return original
	}
	meta, ok := c.metadataFor(path[0])
	if !ok {
		return original
	}
	settings, _ := doc["settings"].(map[string]any)
	preset := findPreset(settings, block, meta.Path, "slug", path[1])
	if preset == nil {
		return original
	}
	return c.decode(doc, block, preset[meta.ValueKey], depth+1)
}

func (c *codec) customValue(doc map[string]any, block string, original any, path []string, depth int) any {
	settings, _ := doc["settings"].(map[string]any)
	var result any
	if block != "" {
		result, _ = layering.Get(settings, append([]string{"blocks", block, "custom"}, path...))
	}
	if result == nil {
		result, _ = layering.Get(settings, append([]string{"custom"}, path...))
	}
	if isEmpty(result) {
		return original
	}
	return c.decode(doc, block, result, depth+1)
}

func (c *codec) metadataFor(infix string) (Metadata, bool) {
	for _, meta := range c.metadata {
		if meta.CSSVarInfix == infix {
			return meta, true
		}
	}
	return Metadata{}, false
}

// findPreset searches block presets first, then root presets, walking origins
// by priority. A match is discarded when a higher-priority preset reuses its
// slug with a different value, because that preset shadows it.
func findPreset(settings map[string]any, block string, path []string, property string, value any) map[string]any {
	candidates := make([]any, 0, 2)
	if block != "" {
		scoped, _ := layering.Get(settings, append([]string{"blocks", block}, path...))
		candidates = append(candidates, scoped)
	}
	root, _ := layering.Get(settings, path)
	candidates = append(candidates, root)

	for _, candidate := range candidates {
		byOrigin, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		for _, origin := range origins {
			for _, preset := range presetList(byOrigin[origin]) {
				if !sameValue(preset[property], value) {
					continue
				}
				if property == "slug" {
					return preset
				}
				winner := findPreset(settings, block, path, "slug", preset["slug"])
				if winner != nil && sameValue(winner[property], preset[property]) {
					return preset
				}
				return nil
			}
		}
	}
	return nil
}

func presetList(value any) []map[string]any {
	switch typed := value.(type) {
	case []map[string]any:
		return typed
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if preset, ok := item.(map[string]any); ok {
				out = append(out, preset)
			}
		}
		return out
	default:
		return nil
	}
}

func sameValue(a, b any) bool {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if a == nil || b == nil {
		return false
	}
	return layering.EqualValue(a, b)
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case bool:
		return !typed
	default:
		return false
	}
}
