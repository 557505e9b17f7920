package core

import (
	"fmt"
	"sort"
	"strings"
)

// summaryKeys are result fields that usually carry a one-line verdict.
var summaryKeys = []string{"verdict", "status", "result", "summary", "score", "message"}

// SummarizeResults produces a compact one-liner for an analysis, preferring
// a verdict-like field and falling back to the sorted list of result keys.
func SummarizeResults(results map[string]any) string {
	if len(results) == 0 {
		return ""
	}
	for _, key := range summaryKeys {
		if v, ok := lookupFold(results, key); ok {
			if s := scalar(v); s != "" {
				return key + ": " + s
			}
		}
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}

// lookupFold finds key in m ignoring case, matching how entities decode.
func lookupFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// scalar formats strings, numbers and booleans. Composite values yield "".
func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return ""
	}
}
