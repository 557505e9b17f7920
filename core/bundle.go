package core

import (
	"fmt"
	"time"
)

// Bundle holds everything fetched for one host or one session. Renderers,
// transformers and snapshots all operate on a Bundle.
type Bundle struct {
	Host        string             `json:"host,omitempty"`
	SessionID   string             `json:"session_id,omitempty"`
	FetchedAt   time.Time          `json:"fetched_at"`
	Sessions    []SessionEntity    `json:"sessions"`
	Analyses    []AnalysisEntity   `json:"analyses"`
	Submissions []SubmissionRecord `json:"submissions,omitempty"`
}

// SubmissionRecord pairs a submission with the session and user it belongs
// to. Size is the content length at fetch time and survives compaction.
type SubmissionRecord struct {
	SessionID string     `json:"session_id"`
	Username  string     `json:"username"`
	Size      int        `json:"size"`
	Content   Submission `json:"content,omitempty"`
}

// Title is a short heading for the bundle.
func (b *Bundle) Title() string {
	switch {
	case b.Host != "":
		return "Sessions hosted by " + b.Host
	case b.SessionID != "":
		return "Session " + b.SessionID
	default:
		return "Sessions"
	}
}

// AnalysesFor returns the analyses belonging to sessionID, in bundle order.
func (b *Bundle) AnalysesFor(sessionID string) []AnalysisEntity {
	var out []AnalysisEntity
	for _, a := range b.Analyses {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out
}

// Summary is a one-line count of the bundle's contents.
func (b *Bundle) Summary() string {
	return fmt.Sprintf("%d sessions, %d analyses, %d submissions",
		len(b.Sessions), len(b.Analyses), len(b.Submissions))
}
