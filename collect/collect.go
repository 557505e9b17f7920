// Package collect gathers sessions, analyses and submissions from a Source
// into a core.Bundle.
package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/sonnes/entitygate/core"
)

// Source reads entities from the remote service. *gateway.Gateway
// implements it.
type Source interface {
	// ListSessionsByHost returns the sessions hosted by hostUsername.
	ListSessionsByHost(ctx context.Context, hostUsername string) ([]core.SessionEntity, error)

	// GetSubmission returns what username submitted to sessionID.
	GetSubmission(ctx context.Context, username, sessionID string) (core.Submission, error)

	// ListAnalysesByUserAndSession returns the analyses for one user in a session.
	ListAnalysesByUserAndSession(ctx context.Context, username, sessionID string) ([]core.AnalysisEntity, error)

	// ListAnalysesBySession returns every analysis in a session.
	ListAnalysesBySession(ctx context.Context, sessionID string) ([]core.AnalysisEntity, error)
}

// Options controls what is fetched beyond sessions and analyses.
type Options struct {
	// Submissions fetches the submission of every user that appears in the
	// collected analyses.
	Submissions bool
	// Username restricts Session to a single user's analyses.
	Username string
}

var now = time.Now

// Host collects every session hosted by host, with the analyses of each.
func Host(ctx context.Context, src Source, host string, opts Options) (*core.Bundle, error) {
	sessions, err := src.ListSessionsByHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", host, err)
	}

	b := &core.Bundle{Host: host, FetchedAt: now(), Sessions: sessions}
	for _, s := range sessions {
		analyses, err := src.ListAnalysesBySession(ctx, s.SessionID)
		if err != nil {
			return nil, fmt.Errorf("collect session %s: %w", s.SessionID, err)
		}
		b.Analyses = append(b.Analyses, analyses...)
	}

	if opts.Submissions {
		if err := fetchSubmissions(ctx, src, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Session collects the analyses of one session, optionally for one user.
func Session(ctx context.Context, src Source, sessionID string, opts Options) (*core.Bundle, error) {
	var (
		analyses []core.AnalysisEntity
		err      error
	)
	if opts.Username != "" {
		analyses, err = src.ListAnalysesByUserAndSession(ctx, opts.Username, sessionID)
	} else {
		analyses, err = src.ListAnalysesBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("collect session %s: %w", sessionID, err)
	}

	b := &core.Bundle{SessionID: sessionID, FetchedAt: now(), Analyses: analyses}
	if opts.Submissions {
		if err := fetchSubmissions(ctx, src, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Submission fetches a single submission as a record.
func Submission(ctx context.Context, src Source, username, sessionID string) (core.SubmissionRecord, error) {
	sub, err := src.GetSubmission(ctx, username, sessionID)
	if err != nil {
		return core.SubmissionRecord{}, fmt.Errorf("get submission %s/%s: %w", sessionID, username, err)
	}
	return core.SubmissionRecord{
		SessionID: sessionID,
		Username:  username,
		Size:      len(sub),
		Content:   sub,
	}, nil
}

// fetchSubmissions adds one submission per distinct (session, user) pair in
// b.Analyses, in first-seen order.
func fetchSubmissions(ctx context.Context, src Source, b *core.Bundle) error {
	type key struct{ session, user string }
	seen := make(map[key]bool)
	for _, a := range b.Analyses {
		k := key{a.SessionID, a.Username}
		if a.Username == "" || seen[k] {
			continue
		}
		seen[k] = true

		rec, err := Submission(ctx, src, a.Username, a.SessionID)
		if err != nil {
			return err
		}
		b.Submissions = append(b.Submissions, rec)
	}
	return nil
}
