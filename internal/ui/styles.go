package ui

import "github.com/charmbracelet/lipgloss"

// 3F palette, tuned for dark terminal backgrounds.
const (
	ColorWhite = "#FFFFFF"

	ColorGray400 = "#9FA7B2"
	ColorGray500 = "#6C7585"
	ColorGray600 = "#4E5560"
	ColorGray800 = "#212732"

	// Violet is the brand color; 500 is the primary button color of the web app.
	ColorViolet200 = "#D6CFF5"
	ColorViolet300 = "#B3A6EB"
	ColorViolet400 = "#8A78DA"
	ColorViolet500 = "#644FC1"
	ColorViolet600 = "#503DA3"
	ColorViolet700 = "#3D2E80"

	ColorGreen400  = "#63D78E"
	ColorRed400    = "#F87171"
	ColorYellow300 = "#F8D34C"
	ColorYellow400 = "#F9C424"
	ColorTeal400   = "#80D0C3"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorViolet400))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorGreen400))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorRed400))

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow400))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorViolet500)).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray500))

	// StepStyle renders the "Step n of m" header of the onboarding wizard.
	StepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorViolet300))

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	CommandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorViolet300))

	URLStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color(ColorTeal400))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow300))
)
