package core

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order. Values without an offset are read as
// UTC. Fractional seconds are accepted by every layout.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// lenient decodes raw into T, returning the zero value when raw is absent,
// null or of another shape.
func lenient[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// parseTimestamp reads a JSON string in any of timestampLayouts. Anything
// else yields nil.
func parseTimestamp(raw json.RawMessage) *time.Time {
	s := lenient[string](raw)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
