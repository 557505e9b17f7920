package redact

// maxWalkDepth bounds recursion into deeply nested analysis results.
const maxWalkDepth = 16

// walkAny returns a copy of v with fn applied to every string leaf.
func walkAny(v any, fn func(string) string) any {
	return walk(v, fn, 0)
}

func walk(v any, fn func(string) string, depth int) any {
	if depth > maxWalkDepth {
		return v
	}
	switch val := v.(type) {
	case string:
		return fn(val)
	case []string:
		out := make([]string, len(val))
		for i, s := range val {
			out[i] = fn(s)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = walk(child, fn, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = walk(child, fn, depth+1)
		}
		return out
	default:
		return v
	}
}
