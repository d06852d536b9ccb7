package layering

import (
	"math"
	"reflect"
)

// Merge composes documents ordered from strongest to weakest, returning a new
// document that keeps explicit values from stronger layers while filling any
// missing data from weaker ones. Nested objects merge key by key; every other
// value (scalars, arrays) from a stronger layer replaces the weaker value
// wholesale. The inputs are never modified.
func Merge(layers ...map[string]any) map[string]any {
	if len(layers) == 0 {
		return nil
	}

	merged := Clone(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeMaps(layers[i], merged)
	}
	return merged
}

func mergeMaps(strong, weak map[string]any) map[string]any {
	if strong == nil {
		return weak
	}
	result := make(map[string]any, len(strong)+len(weak))
	for key, value := range weak {
		result[key] = value
	}
	for key, value := range strong {
		result[key] = mergeValue(value, result[key])
	}
	return result
}

func mergeValue(strong, weak any) any {
	if strong == nil {
		return weak
	}
	strongMap, ok := strong.(map[string]any)
	if !ok {
		return CloneValue(strong)
	}
	weakMap, ok := weak.(map[string]any)
	if !ok {
		return Clone(strongMap)
	}
	return mergeMaps(strongMap, weakMap)
}

// Clone returns a deep copy of doc.
func Clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep copies JSON-like values. Objects and arrays are copied,
// scalars are returned as-is. Typed slices and maps that did not come from a
// JSON decoder are copied through reflection.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return Clone(typed)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = CloneValue(typed[i])
		}
		return out
	case string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return typed
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return value
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return value
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	default:
		return value
	}
}

// Equal reports whether two documents are structurally equal. A nil value
// equals an empty object at any depth, and numbers compare by value regardless of their Go
// type, so documents built in code match documents decoded from JSON.
func Equal(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for key, left := range a {
		right, ok := b[key]
		if !ok || !EqualValue(left, right) {
			return false
		}
	}
	return true
}

// EqualValue compares two JSON-like values with the same rules as Equal.
func EqualValue(a, b any) bool {
	if a == nil || b == nil {
		return emptyObject(a) && emptyObject(b)
	}
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		return ok && Equal(am, bm)
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !EqualValue(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && (an == bn || (math.IsNaN(an) && math.IsNaN(bn)))
	}
	return reflect.DeepEqual(a, b)
}

func emptyObject(value any) bool {
	if value == nil {
		return true
	}
	obj, ok := value.(map[string]any)
	return ok && len(obj) == 0
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
