// Package snapshot persists collected bundles to disk as JSON so they can be
// re-rendered or merged with later fetches.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sonnes/entitygate/core"
)

// ReadFile reads a bundle from disk. Returns an empty Bundle if the file does
// not exist.
func ReadFile(path string) (*core.Bundle, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &core.Bundle{}, nil
	}
	if err != nil {
		return nil, err
	}

	var b core.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// WriteFile writes b to disk atomically using a temporary file and rename,
// which is safe against concurrent writers.
func WriteFile(path string, b *core.Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

// Merge upserts the contents of src into dst. Sessions match on SessionID,
// analyses on (ID, SessionID, Username) and submissions on (SessionID,
// Username). Sessions end up sorted newest first; entries without a
// timestamp sort last.
func Merge(dst, src *core.Bundle) {
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.SessionID != "" {
		dst.SessionID = src.SessionID
	}
	if src.FetchedAt.After(dst.FetchedAt) {
		dst.FetchedAt = src.FetchedAt
	}

	for _, s := range src.Sessions {
		dst.Sessions = upsert(dst.Sessions, s, func(e core.SessionEntity) bool {
			return e.SessionID == s.SessionID
		})
	}
	for _, a := range src.Analyses {
		dst.Analyses = upsert(dst.Analyses, a, func(e core.AnalysisEntity) bool {
			return e.ID == a.ID && e.SessionID == a.SessionID && e.Username == a.Username
		})
	}
	for _, s := range src.Submissions {
		dst.Submissions = upsert(dst.Submissions, s, func(e core.SubmissionRecord) bool {
			return e.SessionID == s.SessionID && e.Username == s.Username
		})
	}

	sort.SliceStable(dst.Sessions, func(i, j int) bool {
		return timeOf(dst.Sessions[i].Timestamp).After(timeOf(dst.Sessions[j].Timestamp))
	})
}

func upsert[T any](list []T, v T, match func(T) bool) []T {
	for i, e := range list {
		if match(e) {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
