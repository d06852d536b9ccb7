package globalstyles

import "strings"

// Path addresses a value relative to the settings or styles section. The zero
// Path addresses the section itself.
type Path []string

// ParsePath splits a dotted path. Empty segments are dropped, so "" and "."
// both yield the zero Path.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return nil
	}
	parts := strings.Split(dotted, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// String renders the dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsZero reports whether p addresses the section root.
func (p Path) IsZero() bool {
	return len(p) == 0
}

// Join returns a new Path with segments appended. p is not modified.
func (p Path) Join(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	for _, segment := range segments {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

// HasPrefix reports whether prefix is a leading subsequence of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// settingPath builds settings[.blocks.<block>][.path].
func settingPath(block string, path Path) []string {
	return scopedPath(SettingsKey, block, path)
}

// stylePath builds styles[.blocks.<block>][.path].
func stylePath(block string, path Path) []string {
	return scopedPath(StylesKey, block, path)
}

func scopedPath(sectionKey, block string, path Path) []string {
	segments := make([]string, 0, len(path)+3)
	segments = append(segments, sectionKey)
	if block != "" {
		segments = append(segments, blocksKey, block)
	}
	return append(segments, path...)
}
