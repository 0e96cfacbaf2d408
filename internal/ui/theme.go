package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the huh theme used by every prompt.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(lipgloss.Color(ColorViolet500))
	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(ColorViolet400)).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color(ColorGray500))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color(ColorRed400))
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color(ColorRed400))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(lipgloss.Color(ColorViolet500))
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(lipgloss.Color(ColorViolet300))
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.Color(ColorGray500))
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorViolet500))
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(lipgloss.Color(ColorGray500)).
		Background(lipgloss.Color(ColorGray800))
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(lipgloss.Color(ColorViolet500))
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(lipgloss.Color(ColorGray500))
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(lipgloss.Color(ColorViolet500))

	t.Blurred.Base = t.Blurred.Base.BorderForeground(lipgloss.Color(ColorGray600))
	t.Blurred.Title = t.Blurred.Title.Foreground(lipgloss.Color(ColorGray500))
	t.Blurred.Description = t.Blurred.Description.Foreground(lipgloss.Color(ColorGray600))
	t.Blurred.SelectSelector = t.Blurred.SelectSelector.Foreground(lipgloss.Color(ColorGray600))
	t.Blurred.SelectedOption = t.Blurred.SelectedOption.Foreground(lipgloss.Color(ColorGray500))
	t.Blurred.UnselectedOption = t.Blurred.UnselectedOption.Foreground(lipgloss.Color(ColorGray600))

	return t
}

// KeyMap is the huh default key map with esc bound to quit, so a wizard
// step can be abandoned without ctrl+c.
func KeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	return km
}
