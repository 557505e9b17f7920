package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Entity colors: blue for sessions, emerald for analyses, slate for submissions.
	colorSession    = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAnalysis   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorSubmission = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorUser   = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // purple
)

var (
	styleSessionBadge    = lipgloss.NewStyle().Foreground(colorSession).Bold(true)
	styleAnalysisBadge   = lipgloss.NewStyle().Foreground(colorAnalysis).Bold(true)
	styleSubmissionBadge = lipgloss.NewStyle().Foreground(colorSubmission).Bold(true)

	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)

	styleUser   = lipgloss.NewStyle().Foreground(colorUser).Bold(true)
	styleDetail = lipgloss.NewStyle().Foreground(colorDim)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
