package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Hook status colors
	StatusPending   = lipgloss.Color("#9CA3AF") // Gray
	StatusRunning   = lipgloss.Color("#60A5FA") // Blue
	StatusSucceeded = lipgloss.Color("#10B981") // Green
	StatusFailed    = lipgloss.Color("#F87171") // Red
	StatusSkipped   = lipgloss.Color("#F59E0B") // Amber

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// Status badge styles
	StatusBadge = lipgloss.NewStyle().
			Bold(true).
			Width(4)

	// Level header in plan output
	LevelHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(BlueColor)

	// Captured hook output shown under the status line
	OutputBlock = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Summary line
	Summary = lipgloss.NewStyle().
		Bold(true).
		MarginTop(1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)
)

// StatusColor returns the color for a hook status.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "pending":
		return StatusPending
	case "running":
		return StatusRunning
	case "succeeded":
		return StatusSucceeded
	case "failed":
		return StatusFailed
	case "skipped":
		return StatusSkipped
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for a hook status.
func StatusIcon(status string) string {
	switch status {
	case "pending":
		return "○"
	case "running":
		return "●"
	case "succeeded":
		return "✓"
	case "failed":
		return "✗"
	case "skipped":
		return "⊘"
	default:
		return "●"
	}
}

// StatusLabel returns the fixed-width badge text for a hook status.
func StatusLabel(status string) string {
	switch status {
	case "succeeded":
		return "PASS"
	case "failed":
		return "FAIL"
	case "skipped":
		return "SKIP"
	case "running":
		return "RUN"
	default:
		return "WAIT"
	}
}

// Badge renders the colored status badge for a hook status.
func Badge(status string) string {
	return StatusBadge.Foreground(StatusColor(status)).Render(StatusLabel(status))
}
