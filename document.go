package globalstyles

import (
	"errors"
	"fmt"
)

// Top-level sections of a document.
const (
	SettingsKey = "settings"
	StylesKey   = "styles"
	blocksKey   = "blocks"
)

// ErrInvalidDocument indicates a document whose settings or styles section
// is not an object.
var ErrInvalidDocument = errors.New("globalstyles: invalid document")

// Document is a JSON-like configuration tree with top-level settings and
// styles objects.
type Document = map[string]any

// EmptyDocument returns a fresh canonical empty document.
func EmptyDocument() Document {
	return Document{
		SettingsKey: map[string]any{},
		StylesKey:   map[string]any{},
	}
}

// ValidateDocument reports ErrInvalidDocument when a present settings or
// styles section is not an object. A nil document is valid.
func ValidateDocument(doc Document) error {
	for _, key := range []string{SettingsKey, StylesKey} {
		value, ok := doc[key]
		if !ok || value == nil {
			continue
		}
		if _, isMap := value.(map[string]any); !isMap {
			return fmt.Errorf("%w: %s is %T, want object", ErrInvalidDocument, key, value)
		}
	}
	return nil
}

func section(doc Document, key string) map[string]any {
	value, _ := doc[key].(map[string]any)
	return value
}
