// Package tui provides the Bubble Tea game interface.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the colors of one visual scheme.
type Theme struct {
	Name string

	word        lipgloss.Style
	thumbLeft   lipgloss.Style
	thumbRight  lipgloss.Style
	activeWord  lipgloss.Style
	typedPrefix lipgloss.Style
	correct     lipgloss.Style
	wrong       lipgloss.Style
	neutral     lipgloss.Style
	hudLabel    lipgloss.Style
	hudValue    lipgloss.Style
	combo       lipgloss.Style
	lives       lipgloss.Style
	footer      lipgloss.Style
	flash       lipgloss.Style
	overlay     lipgloss.Style
	overlayText lipgloss.Style
	danger      lipgloss.Style
}

var themes = map[string]Theme{
	"default": {
		Name:        "default",
		word:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		thumbLeft:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5AA9E6")),
		thumbRight:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E667A9")),
		activeWord:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		typedPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Underline(true),
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
		wrong:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		neutral:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		hudLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		hudValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		combo:       lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		lives:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		flash:       lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 3),
		overlayText: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		danger:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
	},
	"mono": {
		Name:        "mono",
		word:        lipgloss.NewStyle().Faint(true),
		thumbLeft:   lipgloss.NewStyle().Faint(true).Underline(true),
		thumbRight:  lipgloss.NewStyle().Faint(true).Italic(true),
		activeWord:  lipgloss.NewStyle().Bold(true),
		typedPrefix: lipgloss.NewStyle().Bold(true).Underline(true),
		correct:     lipgloss.NewStyle().Bold(true).Reverse(true),
		wrong:       lipgloss.NewStyle().Strikethrough(true),
		neutral:     lipgloss.NewStyle(),
		hudLabel:    lipgloss.NewStyle().Faint(true),
		hudValue:    lipgloss.NewStyle().Bold(true),
		combo:       lipgloss.NewStyle().Bold(true),
		lives:       lipgloss.NewStyle(),
		footer:      lipgloss.NewStyle().Faint(true),
		flash:       lipgloss.NewStyle().Bold(true),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			Padding(1, 3),
		overlayText: lipgloss.NewStyle(),
		danger:      lipgloss.NewStyle().Bold(true).Reverse(true),
	},
}

// ThemeByName returns the named theme, falling back to the default scheme.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	return []string{"default", "mono"}
}
