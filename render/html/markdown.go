package html

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sonnes/entitygate/core"
)

// bundleMarkdown lays out the bundle as GFM: a section per session with an
// analyses table and a highlighted JSON block per analysis, followed by
// analyses of unlisted sessions and a submissions table.
func bundleMarkdown(b *core.Bundle, sessionHref func(string) string) string {
	var sb strings.Builder

	listed := make(map[string]bool, len(b.Sessions))
	for _, s := range b.Sessions {
		listed[s.SessionID] = true

		heading := "Session " + escape(s.SessionID)
		if sessionHref != nil {
			heading = fmt.Sprintf("[%s](%s)", heading, sessionHref(s.SessionID))
		}
		fmt.Fprintf(&sb, "## %s\n\n", heading)

		var meta []string
		if s.HostUsername != "" {
			meta = append(meta, "host **"+escape(s.HostUsername)+"**")
		}
		if s.Timestamp != nil {
			meta = append(meta, s.Timestamp.Format(time.RFC1123))
		}
		if len(s.Users) > 0 {
			meta = append(meta, fmt.Sprintf("%d users", len(s.Users)))
		}
		if len(meta) > 0 {
			sb.WriteString(strings.Join(meta, " · ") + "\n\n")
		}

		writeAnalyses(&sb, b.AnalysesFor(s.SessionID))
	}

	var orphans []core.AnalysisEntity
	for _, a := range b.Analyses {
		if !listed[a.SessionID] {
			orphans = append(orphans, a)
		}
	}
	if len(orphans) > 0 {
		sb.WriteString("## Analyses\n\n")
		writeAnalyses(&sb, orphans)
	}

	if len(b.Submissions) > 0 {
		sb.WriteString("## Submissions\n\n| Session | User | Bytes |\n|---|---|---:|\n")
		for _, s := range b.Submissions {
			size := s.Size
			if s.Content != nil {
				size = len(s.Content)
			}
			fmt.Fprintf(&sb, "| %s | %s | %d |\n", escape(s.SessionID), escape(s.Username), size)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeAnalyses(sb *strings.Builder, analyses []core.AnalysisEntity) {
	if len(analyses) == 0 {
		sb.WriteString("_No analyses._\n\n")
		return
	}

	sb.WriteString("| User | Session | Summary |\n|---|---|---|\n")
	for _, a := range analyses {
		fmt.Fprintf(sb, "| %s | %s | %s |\n",
			escape(a.Username), escape(a.SessionID), escape(core.SummarizeResults(a.Results)))
	}
	sb.WriteString("\n")

	for _, a := range analyses {
		if len(a.Results) == 0 {
			continue
		}
		data, err := json.MarshalIndent(a.Results, "", "  ")
		if err != nil {
			continue
		}
		fmt.Fprintf(sb, "**%s**\n\n```json\n%s\n```\n\n", escape(a.Username), fence(string(data)))
	}
}

// escape neutralizes characters that would break inline markdown or a
// table cell.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
		"<", "&lt;",
		">", "&gt;",
		"\n", " ",
		"\r", " ",
	)
	return r.Replace(s)
}

// fence keeps JSON from closing the surrounding code fence early.
func fence(s string) string {
	return strings.ReplaceAll(s, "```", "`​``")
}
