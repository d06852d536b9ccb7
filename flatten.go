package globalstyles

import (
	"sort"

	"github.com/goliatone/go-global-styles/presets"
)

// FieldDescriptor describes one leaf of a document. Reference holds the
// preset or custom reference a string leaf points at, if any.
type FieldDescriptor struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	Reference string `json:"reference,omitempty"`
}

// Flatten lists every leaf of doc sorted by path. Arrays and empty objects
// are leaves.
func Flatten(doc Document) []FieldDescriptor {
	fields := []FieldDescriptor{}
	var walk func(node map[string]any, at Path)
	walk = func(node map[string]any, at Path) {
		for key, value := range node {
			path := at.Join(key)
			if child, ok := value.(map[string]any); ok && len(child) > 0 {
				walk(child, path)
				continue
			}
			fields = append(fields, describeLeaf(path, value))
		}
	}
	walk(doc, nil)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return fields
}

func describeLeaf(path Path, value any) FieldDescriptor {
	field := FieldDescriptor{Path: path.String(), Type: jsonKind(value)}
	switch typed := value.(type) {
	case []any:
		elem := "any"
		if len(typed) > 0 {
			elem = jsonKind(typed[0])
		}
		field.Type = "array<" + elem + ">"
	case string:
		if ref, ok := presets.ParseReference(typed); ok {
			field.Reference = ref.String()
		}
	}
	return field
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}
