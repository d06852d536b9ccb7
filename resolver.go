package globalstyles

import (
	"github.com/goliatone/go-global-styles/layering"
	"github.com/goliatone/go-global-styles/presets"
)

// Resolver reads and writes settings and styles on Tiers. It is stateless
// apart from its configuration and safe for concurrent use.
type Resolver struct {
	keys   []Path
	codec  presets.Codec
	strict bool
}

var defaultResolver = NewResolver()

// NewResolver builds a Resolver. It honours WithSettingKeys, WithPresetCodec
// and WithStrictPaths; other options are ignored.
func NewResolver(opts ...Option) *Resolver {
	cfg := applyOptions(opts)
	return newResolver(cfg)
}

func newResolver(cfg config) *Resolver {
	return &Resolver{
		keys:   parseKeys(cfg.settingKeys),
		codec:  cfg.codec,
		strict: cfg.strictPaths,
	}
}

// SettingKeys returns the configured aggregate keys.
func (r *Resolver) SettingKeys() []Path {
	out := make([]Path, len(r.keys))
	copy(out, r.keys)
	return out
}

// Setting resolves path under settings for block, falling back to the root
// value in the same tier when the block value is absent. The zero path
// returns the aggregate of every configured key.
func (r *Resolver) Setting(t Tiers, path Path, block string, source Source) (any, error) {
	doc, err := t.tier(source)
	if err != nil {
		return nil, resolveError("setting", path, block, source, err)
	}
	if path.IsZero() {
		return r.aggregate(doc, block), nil
	}
	if err := r.checkPath(path); err != nil {
		return nil, resolveError("setting", path, block, source, err)
	}
	return settingIn(doc, path, block), nil
}

// Settings returns the aggregate of every configured key for block.
func (r *Resolver) Settings(t Tiers, block string, source Source) (map[string]any, error) {
	doc, err := t.tier(source)
	if err != nil {
		return nil, resolveError("settings", nil, block, source, err)
	}
	return r.aggregate(doc, block), nil
}

// StyleOption adjusts a single style read or write.
type StyleOption func(*styleConfig)

type styleConfig struct {
	raw bool
}

// RawStyle skips the preset codec: reads return stored references such as
// var:preset|color|primary as-is and writes store the value unencoded.
func RawStyle() StyleOption {
	return func(cfg *styleConfig) {
		cfg.raw = true
	}
}

func applyStyleOptions(opts []StyleOption) styleConfig {
	var cfg styleConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Style resolves path under styles for block. Styles do not inherit from the
// root. Reads through SourceAll take the user value and fall back to the base
// value, except for the root custom CSS where an absent user value stays
// absent. The result is decoded through the preset codec unless RawStyle is
// given.
func (r *Resolver) Style(t Tiers, path Path, block string, source Source, opts ...StyleOption) (any, error) {
	full := stylePath(block, path)
	var value any
	decodeAgainst := t.Merged
	switch source {
	case SourceAll:
		value, _ = layering.Get(t.User, full)
		if value == nil && !isRootCSS(path, block) {
			value, _ = layering.Get(t.Base, full)
		}
	case SourceUser:
		value, _ = layering.Get(t.User, full)
	case SourceBase:
		value, _ = layering.Get(t.Base, full)
		decodeAgainst = t.Base
	default:
		_, err := t.tier(source)
		return nil, resolveError("style", path, block, source, err)
	}
	if applyStyleOptions(opts).raw {
		return layering.CloneValue(value), nil
	}
	return r.codec.Decode(decodeAgainst, block, value), nil
}

// WithSetting returns tiers whose user tier holds value at path. The zero
// path replaces the whole settings object for block.
func (r *Resolver) WithSetting(t Tiers, path Path, block string, value any) Tiers {
	user := layering.SetIn(t.User, settingPath(block, path), layering.CloneValue(value))
	return t.withUser(user)
}

// WithStyle encodes value against the merged settings and stores it in the
// user tier at path. RawStyle stores value unencoded.
func (r *Resolver) WithStyle(t Tiers, path Path, block string, value any, opts ...StyleOption) Tiers {
	encoded := value
	if !applyStyleOptions(opts).raw {
		encoded = r.codec.Encode(section(t.Merged, SettingsKey), block, path.String(), value)
	}
	user := layering.SetIn(t.User, stylePath(block, path), layering.CloneValue(encoded))
	return t.withUser(user)
}

// CheckSettingPath reports ErrUnknownSetting for paths outside the
// configured keys when strict paths are enabled.
func (r *Resolver) CheckSettingPath(path Path) error {
	return r.checkPath(path)
}

func (r *Resolver) checkPath(path Path) error {
	if !r.strict || path.IsZero() || knownSetting(r.keys, path) {
		return nil
	}
	return ErrUnknownSetting
}

func (r *Resolver) aggregate(doc Document, block string) map[string]any {
	result := map[string]any{}
	for _, key := range r.keys {
		value := settingIn(doc, key, block)
		if value == nil {
			continue
		}
		result = layering.SetIn(result, key, layering.CloneValue(value))
	}
	return result
}

func settingIn(doc Document, path Path, block string) any {
	if block != "" {
		if value, _ := layering.Get(doc, settingPath(block, path)); value != nil {
			return value
		}
	}
	value, _ := layering.Get(doc, settingPath("", path))
	return value
}

func isRootCSS(path Path, block string) bool {
	return block == "" && len(path) == 1 && path[0] == "css"
}
