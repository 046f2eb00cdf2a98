package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var Themes = []Theme{
	{
		Name:      "cyberpunk",
		Primary:   "#ff00ff",
		Secondary: "#00ffff",
		Text:      "#ffffff",
		Muted:     "#666666",
		Success:   "#00ff00",
		Warning:   "#ff8800",
		Error:     "#ff0000",
	},
	{
		Name:      "retro",
		Primary:   "#00ff00",
		Secondary: "#00cc00",
		Text:      "#00ff00",
		Muted:     "#005500",
		Success:   "#88ff88",
		Warning:   "#ffff00",
		Error:     "#ff0000",
	},
	{
		Name:      "chalkboard",
		Primary:   "#f5f5dc",
		Secondary: "#9fd3c7",
		Text:      "#ececec",
		Muted:     "#5b7065",
		Success:   "#b8e994",
		Warning:   "#f6d55c",
		Error:     "#ed553b",
	},
	{
		Name:      "ocean",
		Primary:   "#0077be",
		Secondary: "#00a8cc",
		Text:      "#e0f0ff",
		Muted:     "#4488aa",
		Success:   "#00ff88",
		Warning:   "#ffcc00",
		Error:     "#ff4444",
	},
	{
		Name:      "minimal",
		Primary:   "#ffffff",
		Secondary: "#cccccc",
		Text:      "#ffffff",
		Muted:     "#888888",
		Success:   "#00ff00",
		Warning:   "#ffaa00",
		Error:     "#ff0000",
	},
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Themes[0], false
}

// NextTheme returns the theme after current in Themes, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
