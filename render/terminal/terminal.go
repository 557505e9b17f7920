// Package terminal renders bundles as ANSI-colored cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/entitygate/core"
)

const defaultWidth = 100

// Renderer pretty-prints a bundle as cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes one card per session, each followed by its analyses.
// Analyses whose session is not in the bundle get cards of their own.
func (r *Renderer) Render(w io.Writer, b *core.Bundle) error {
	width := r.termWidth()

	writeHeader(w, b)

	listed := make(map[string]bool, len(b.Sessions))
	for _, s := range b.Sessions {
		listed[s.SessionID] = true
		writeSession(w, s, b.AnalysesFor(s.SessionID), width)
	}

	var orphans []core.AnalysisEntity
	for _, a := range b.Analyses {
		if !listed[a.SessionID] {
			orphans = append(orphans, a)
		}
	}
	if len(orphans) > 0 {
		writeSeparator(w, width)
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+styleAnalysisBadge.Render("ANALYSES"))
		for _, a := range orphans {
			fmt.Fprintln(w, "  "+analysisLine(a, width))
		}
	}

	if len(b.Submissions) > 0 {
		writeSeparator(w, width)
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+styleSubmissionBadge.Render("SUBMISSIONS"))
		for _, s := range b.Submissions {
			line := styleUser.Render(s.Username) + "  " +
				styleDetail.Render(fmt.Sprintf("%s  %s bytes", s.SessionID, formatNumber(submissionSize(s))))
			fmt.Fprintln(w, "  "+line)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the bundle title and counters.
func writeHeader(w io.Writer, b *core.Bundle) {
	fmt.Fprintln(w, styleTitle.Render(b.Title()))
	if !b.FetchedAt.IsZero() {
		fmt.Fprintln(w, styleMeta.Render("fetched "+core.RelativeTime(b.FetchedAt)))
	}
	fmt.Fprintln(w)
	writeCounts(w, b)
}

// writeCounts renders entity counters in two rows: values then labels.
func writeCounts(w io.Writer, b *core.Bundle) {
	type stat struct {
		value int
		label string
	}
	stats := []stat{
		{len(b.Sessions), "SESSIONS"},
		{len(b.Analyses), "ANALYSES"},
	}
	if len(b.Submissions) > 0 {
		stats = append(stats, stat{len(b.Submissions), "SUBMISSIONS"})
	}

	var values, labels []string
	for _, s := range stats {
		formatted := formatNumber(s.value)
		colWidth := max(len(formatted), len(s.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, formatted))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, s.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// writeSession renders a session card: badge, metadata, then analyses.
func writeSession(w io.Writer, s core.SessionEntity, analyses []core.AnalysisEntity, width int) {
	writeSeparator(w, width)

	header := styleSessionBadge.Render("SESSION " + s.SessionID)
	var meta []string
	if s.HostUsername != "" {
		meta = append(meta, "@"+s.HostUsername)
	}
	if s.Timestamp != nil {
		meta = append(meta, formatTime(*s.Timestamp))
	}
	if len(s.Users) > 0 {
		meta = append(meta, fmt.Sprintf("%d users", len(s.Users)))
	}
	if len(meta) > 0 {
		header += "    " + styleMeta.Render(strings.Join(meta, "    "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+header)

	if len(analyses) == 0 {
		fmt.Fprintln(w, "  "+styleDetail.Render("no analyses"))
		return
	}
	for _, a := range analyses {
		fmt.Fprintln(w, "  "+analysisLine(a, width))
	}
}

// analysisLine renders "user  summary" truncated to the content width.
func analysisLine(a core.AnalysisEntity, width int) string {
	contentWidth := max(width-4, 40)

	name := a.Username
	if name == "" {
		name = "unknown"
	}
	line := styleUser.Render(name)
	if a.SessionID != "" {
		line += " " + styleMeta.Render("("+a.SessionID+")")
	}
	if summary := core.SummarizeResults(a.Results); summary != "" {
		used := lipgloss.Width(name + " (" + a.SessionID + ")  ")
		line += "  " + styleDetail.Render(truncate(summary, contentWidth-used))
	}
	return line
}

func submissionSize(s core.SubmissionRecord) int {
	if s.Content != nil {
		return len(s.Content)
	}
	return s.Size
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
