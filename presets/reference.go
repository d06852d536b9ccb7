package presets

import "strings"

// Reference is a parsed preset or custom value reference.
type Reference struct {
	// Kind is "preset" or "custom".
	Kind string
	// Path holds the family and slug for presets, or the custom path.
	Path []string
}

// ParseReference parses the user form var:preset|color|primary and the theme
// form var(--wp--preset--color--primary).
func ParseReference(value string) (Reference, bool) {
	var parsed []string
	switch {
	case strings.HasPrefix(value, userValuePrefix):
		parsed = strings.Split(value[len(userValuePrefix):], "|")
	case strings.HasPrefix(value, themeValuePrefix) && strings.HasSuffix(value, themeValueSuffix):
		inner := value[len(themeValuePrefix) : len(value)-len(themeValueSuffix)]
		parsed = strings.Split(inner, "--")
	default:
		return Reference{}, false
	}
	if len(parsed) < 2 || (parsed[0] != "preset" && parsed[0] != "custom") {
		return Reference{}, false
	}
	return Reference{Kind: parsed[0], Path: parsed[1:]}, true
}

// Slug returns the preset slug, or "" for custom references.
func (r Reference) Slug() string {
	if r.Kind != "preset" || len(r.Path) < 2 {
		return ""
	}
	return r.Path[1]
}

// String renders the user form.
func (r Reference) String() string {
	return userValuePrefix + r.Kind + "|" + strings.Join(r.Path, "|")
}

// CSSVar renders the CSS custom property form.
func (r Reference) CSSVar() string {
	return themeValuePrefix + r.Kind + "--" + strings.Join(r.Path, "--") + themeValueSuffix
}
