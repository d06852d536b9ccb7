package globalstyles

import (
	"fmt"

	"github.com/goliatone/go-global-styles/layering"
)

// Tiers bundles the three configuration views. Merged is always derived from
// Base and User and is never written directly. A Tiers value is immutable:
// every write returns a new value that shares unchanged subtrees.
type Tiers struct {
	Base   Document
	User   Document
	Merged Document
}

// NewTiers copies base and user and computes the merged view.
func NewTiers(base, user Document) Tiers {
	return Tiers{Base: layering.Clone(base)}.withUser(layering.Clone(user))
}

func (t Tiers) withUser(user Document) Tiers {
	t.User = user
	t.Merged = merge(t.Base, user)
	return t
}

func (t Tiers) withBase(base Document) Tiers {
	t.Base = base
	t.Merged = merge(base, t.User)
	return t
}

func merge(base, user Document) Document {
	merged := layering.Merge(user, base)
	if merged == nil {
		return EmptyDocument()
	}
	return merged
}

func (t Tiers) tier(source Source) (Document, error) {
	switch source {
	case SourceAll:
		return t.Merged, nil
	case SourceUser:
		return t.User, nil
	case SourceBase:
		return t.Base, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSource, int(source))
	}
}

// CanReset reports whether the user tier holds anything beyond the canonical
// empty document.
func (t Tiers) CanReset() bool {
	return t.User != nil && !layering.Equal(t.User, EmptyDocument())
}

// Reset returns tiers whose user tier is a fresh empty document.
func (t Tiers) Reset() Tiers {
	return t.withUser(EmptyDocument())
}

// Setting resolves a setting with the default resolver.
func (t Tiers) Setting(path Path, block string, source Source) (any, error) {
	return defaultResolver.Setting(t, path, block, source)
}

// Style resolves a style with the default resolver.
func (t Tiers) Style(path Path, block string, source Source, opts ...StyleOption) (any, error) {
	return defaultResolver.Style(t, path, block, source, opts...)
}

// WithSetting writes a setting with the default resolver.
func (t Tiers) WithSetting(path Path, block string, value any) Tiers {
	return defaultResolver.WithSetting(t, path, block, value)
}

// WithStyle writes a style with the default resolver.
func (t Tiers) WithStyle(path Path, block string, value any, opts ...StyleOption) Tiers {
	return defaultResolver.WithStyle(t, path, block, value, opts...)
}
