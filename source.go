package globalstyles

import (
	"fmt"
	"strings"
)

// Source selects the tier a read targets. Writes always target the user tier.
type Source int

const (
	// SourceAll reads the merged view.
	SourceAll Source = iota
	// SourceUser reads the user overrides only.
	SourceUser
	// SourceBase reads the theme defaults only.
	SourceBase
)

var sourceNames = map[Source]string{
	SourceAll:  "all",
	SourceUser: "user",
	SourceBase: "base",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	_, ok := sourceNames[s]
	return ok
}

// ParseSource converts a textual source into a Source. Empty input means
// SourceAll.
func ParseSource(value string) (Source, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return SourceAll, nil
	}
	for source, name := range sourceNames {
		if name == normalized {
			return source, nil
		}
	}
	return SourceAll, fmt.Errorf("%w: %q", ErrUnsupportedSource, value)
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSource, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
