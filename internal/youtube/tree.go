package youtube

// Navigation helpers over the decoded initial-data tree. encoding/json
// yields map[string]any, []any, and scalars; each step reports ok=false
// when the shape does not match, which keeps the parser's fallback logic
// declarative.

// dig walks nested object keys and returns the value at the end of the
// path.
func dig(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// digSlice returns the array at the end of the path.
func digSlice(v any, path ...string) ([]any, bool) {
	got, ok := dig(v, path...)
	if !ok {
		return nil, false
	}
	s, ok := got.([]any)
	return s, ok
}

// digString returns the string at the end of the path.
func digString(v any, path ...string) (string, bool) {
	got, ok := dig(v, path...)
	if !ok {
		return "", false
	}
	s, ok := got.(string)
	return s, ok
}
