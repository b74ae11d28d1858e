package styles

import (
	"github.com/charmbracelet/lipgloss"

	"storyaudit/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Info      = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Issue list
	IssueFile = lipgloss.NewStyle()

	IssueSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Detail = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	// Score bands
	ScoreGood = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	ScoreWarn = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	ScoreBad  = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// TypeColor returns the color used to tag an issue type
func TypeColor(t domain.IssueType) lipgloss.Color {
	switch t {
	case domain.IssueFileError:
		return Error
	case domain.IssueMissingSections, domain.IssueInsufficientAcademicStructure:
		return Primary
	case domain.IssueLowCitations, domain.IssueInsufficientContent:
		return Warning
	case domain.IssueCountMismatch, domain.IssueStatisticsMismatch, domain.IssueNumberingGaps:
		return Info
	default:
		return Muted
	}
}

// ScoreStyle returns the traffic-light style for a score
func ScoreStyle(s domain.Score) lipgloss.Style {
	switch domain.LightFor(s) {
	case domain.LightGreen:
		return ScoreGood
	case domain.LightYellow:
		return ScoreWarn
	default:
		return ScoreBad
	}
}
