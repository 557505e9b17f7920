// Package core defines the entities returned by the remote session service
// and the Bundle that collects them for rendering and export.
package core

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// SessionEntity describes a session owned by a host user. Only the commonly
// used fields are decoded; the full server object is kept in Raw. Optional
// fields whose shape does not match are left empty rather than failing the
// decode.
type SessionEntity struct {
	ID           string     `json:"id,omitempty"`
	SessionID    string     `json:"sessionId"`
	HostUsername string     `json:"hostUsername"`
	HostName     string     `json:"hostName,omitempty"`
	Users        []string   `json:"users,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes known fields with case-insensitive name matching and
// retains the original object.
func (s *SessionEntity) UnmarshalJSON(data []byte) error {
	type plain SessionEntity
	var p struct {
		plain
		Users     json.RawMessage `json:"users"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = SessionEntity(p.plain)
	s.Users = lenient[[]string](p.Users)
	s.Timestamp = parseTimestamp(p.Timestamp)
	s.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// AnalysisEntity is one analysis result for a user's work in a session.
type AnalysisEntity struct {
	ID        string         `json:"id,omitempty"`
	SessionID string         `json:"sessionId"`
	Username  string         `json:"username"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Results   map[string]any `json:"analysisResults,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes known fields like SessionEntity.UnmarshalJSON.
func (a *AnalysisEntity) UnmarshalJSON(data []byte) error {
	type plain AnalysisEntity
	var p struct {
		plain
		Timestamp json.RawMessage `json:"timestamp"`
		Results   json.RawMessage `json:"analysisResults"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = AnalysisEntity(p.plain)
	a.Timestamp = parseTimestamp(p.Timestamp)
	a.Results = lenient[map[string]any](p.Results)
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Submission is the content a user submitted to a session. On the wire it is
// a JSON value: either an array of byte values or a base64 string.
type Submission []byte

// UnmarshalJSON accepts `null`, a base64 string, or an array of integers in
// the range 0..255.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*s = nil
	case string:
		b, err := base64.StdEncoding.DecodeString(val)
		if err != nil {
			return fmt.Errorf("submission: %w", err)
		}
		*s = b
	case []any:
		b := make([]byte, len(val))
		for i, e := range val {
			n, ok := e.(float64)
			if !ok || n < 0 || n > 255 || n != float64(int(n)) {
				return fmt.Errorf("submission: element %d is not a byte value: %v", i, e)
			}
			b[i] = byte(n)
		}
		*s = b
	default:
		return fmt.Errorf("submission: unexpected JSON %T", v)
	}
	return nil
}

// MarshalJSON encodes the submission as a base64 string, matching the
// encoding/json convention for byte slices.
func (s Submission) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(s))
}
