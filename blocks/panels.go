package blocks

import "sort"

// StyleProperty maps a style panel category to the support flag that enables
// it on a block type.
type StyleProperty struct {
	Name string
	// Support is the path inside BlockType.Supports, e.g. typography.fontSize.
	Support []string
	// RequiresOptOut marks categories that are on as soon as the first support
	// key is declared, unless the full path is explicitly false.
	RequiresOptOut bool
}

// DefaultStyleProperties returns the capability table used when none is
// configured.
func DefaultStyleProperties() []StyleProperty {
	return []StyleProperty{
		{Name: "background", Support: []string{"color", "gradients"}},
		{Name: "backgroundColor", Support: []string{"color", "background"}, RequiresOptOut: true},
		{Name: "borderColor", Support: []string{"__experimentalBorder", "color"}},
		{Name: "borderRadius", Support: []string{"__experimentalBorder", "radius"}},
		{Name: "borderStyle", Support: []string{"__experimentalBorder", "style"}},
		{Name: "borderWidth", Support: []string{"__experimentalBorder", "width"}},
		{Name: "color", Support: []string{"color", "text"}, RequiresOptOut: true},
		{Name: "filter", Support: []string{"color", "__experimentalDuotone"}},
		{Name: "linkColor", Support: []string{"color", "link"}},
		{Name: "buttonColor", Support: []string{"color", "button"}},
		{Name: "fontFamily", Support: []string{"typography", "__experimentalFontFamily"}},
		{Name: "fontSize", Support: []string{"typography", "fontSize"}},
		{Name: "fontStyle", Support: []string{"typography", "__experimentalFontStyle"}},
		{Name: "fontWeight", Support: []string{"typography", "__experimentalFontWeight"}},
		{Name: "letterSpacing", Support: []string{"typography", "__experimentalLetterSpacing"}},
		{Name: "lineHeight", Support: []string{"typography", "lineHeight"}},
		{Name: "textColumns", Support: []string{"typography", "textColumns"}},
		{Name: "textDecoration", Support: []string{"typography", "__experimentalTextDecoration"}},
		{Name: "textTransform", Support: []string{"typography", "__experimentalTextTransform"}},
		{Name: "margin", Support: []string{"spacing", "margin"}},
		{Name: "padding", Support: []string{"spacing", "padding"}},
		{Name: "minHeight", Support: []string{"dimensions", "minHeight"}},
		{Name: "shadow", Support: []string{"shadow"}},
	}
}

// RootPanels returns the baseline categories offered at the document root
// before element filtering.
func RootPanels() []string {
	return []string{
		"background",
		"backgroundColor",
		"color",
		"linkColor",
		"buttonColor",
		"fontFamily",
		"fontSize",
		"fontStyle",
		"fontWeight",
		"letterSpacing",
		"lineHeight",
		"textDecoration",
		"textTransform",
		"padding",
		"contentSize",
		"wideSize",
		"blockGap",
	}
}

// FilterOption configures SupportedPanels.
type FilterOption func(*filterConfig)

type filterConfig struct {
	properties []StyleProperty
	root       []string
}

// WithStyleProperties replaces the capability table.
func WithStyleProperties(properties []StyleProperty) FilterOption {
	return func(cfg *filterConfig) {
		cfg.properties = append([]StyleProperty(nil), properties...)
	}
}

// WithRootPanels replaces the root baseline.
func WithRootPanels(panels []string) FilterOption {
	return func(cfg *filterConfig) {
		cfg.root = append([]string(nil), panels...)
	}
}

// SupportedPanels returns the sorted style panel categories that apply to
// block (empty means the document root), narrowed to element when given.
// Unknown blocks yield an empty, non-nil slice.
func SupportedPanels(registry Registry, block, element string, opts ...FilterOption) []string {
	cfg := filterConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.properties == nil {
		cfg.properties = DefaultStyleProperties()
	}
	if cfg.root == nil {
		cfg.root = RootPanels()
	}

	var keys []string
	if block == "" {
		keys = cfg.root
	} else {
		if registry == nil {
			return []string{}
		}
		bt, ok := registry.BlockType(block)
		if !ok {
			return []string{}
		}
		keys = blockPanels(bt.Supports, cfg.properties)
	}
	return filterElement(keys, block, element)
}

func blockPanels(supports map[string]any, properties []StyleProperty) []string {
	var keys []string
	if blockGapSupported(supports) {
		keys = append(keys, "blockGap")
	}
	for _, prop := range properties {
		if len(prop.Support) == 0 {
			continue
		}
		value, found := lookup(supports, prop.Support)
		if prop.RequiresOptOut {
			if _, declared := supports[prop.Support[0]]; declared && !(found && isFalse(value)) {
				keys = append(keys, prop.Name)
				continue
			}
		}
		if truthy(value) {
			keys = append(keys, prop.Name)
		}
	}
	return keys
}

// blockGapSupported requires spacing.blockGap and rejects blocks that skip
// serialization for all spacing or for blockGap specifically.
func blockGapSupported(supports map[string]any) bool {
	spacing, ok := supports["spacing"].(map[string]any)
	if !ok || !truthy(spacing["blockGap"]) {
		return false
	}
	switch skip := spacing["__experimentalSkipSerialization"].(type) {
	case bool:
		return !skip
	case []any:
		for _, item := range skip {
			if item == "blockGap" {
				return false
			}
		}
	case []string:
		for _, item := range skip {
			if item == "blockGap" {
				return false
			}
		}
	}
	return true
}

func filterElement(keys []string, block, element string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if !allowedForElement(key, block, element) {
			continue
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func allowedForElement(key, block, element string) bool {
	root := block == ""
	switch key {
	case "fontSize":
		return !isHeading(element)
	case "textDecoration":
		return !root || element == "link"
	case "textTransform", "letterSpacing":
		return !root || isHeading(element) || element == "button" || element == "caption" || element == "text"
	case "textColumns":
		return !root
	default:
		return true
	}
}

func isHeading(element string) bool {
	switch element {
	case "heading", "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	default:
		return false
	}
}

func lookup(supports map[string]any, path []string) (any, bool) {
	var current any = supports
	for _, segment := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func isFalse(value any) bool {
	b, ok := value.(bool)
	return ok && !b
}

// truthy follows the loose rules block.json authors rely on: objects and
// arrays count even when empty.
func truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case float64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return true
	}
}
