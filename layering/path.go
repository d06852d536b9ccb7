package layering

// Get walks doc following segments. It reports false when any segment is
// missing or traverses a non-object value. An empty segment list addresses doc
// itself.
func Get(doc map[string]any, segments []string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	var current any = doc
	for _, segment := range segments {
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

// SetIn returns a copy of doc with value stored at segments. Only the objects
// along the path are copied; every other subtree is shared with doc, which is
// left untouched. Missing or non-object intermediate nodes are replaced by new
// objects. An empty segment list replaces the whole document when value is an
// object and returns doc otherwise.
func SetIn(doc map[string]any, segments []string, value any) map[string]any {
	if len(segments) == 0 {
		if replacement, ok := value.(map[string]any); ok {
			return replacement
		}
		return doc
	}

	out := make(map[string]any, len(doc)+1)
	for key, existing := range doc {
		out[key] = existing
	}

	head := segments[0]
	if len(segments) == 1 {
		out[head] = value
		return out
	}

	child, _ := doc[head].(map[string]any)
	out[head] = SetIn(child, segments[1:], value)
	return out
}

// DeleteIn returns a copy of doc without the value at segments, sharing
// untouched subtrees. It reports whether a value was removed.
func DeleteIn(doc map[string]any, segments []string) (map[string]any, bool) {
	if len(segments) == 0 || doc == nil {
		return doc, false
	}
	head := segments[0]
	existing, ok := doc[head]
	if !ok {
		return doc, false
	}

	if len(segments) == 1 {
		out := make(map[string]any, len(doc))
		for key, value := range doc {
			if key != head {
				out[key] = value
			}
		}
		return out, true
	}

	child, isMap := existing.(map[string]any)
	if !isMap {
		return doc, false
	}
	next, removed := DeleteIn(child, segments[1:])
	if !removed {
		return doc, false
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	out[head] = next
	return out, true
}
