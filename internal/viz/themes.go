package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the play view
type Theme struct {
	Name     string
	Field    lipgloss.Color
	Ship     lipgloss.Color
	Particle lipgloss.Color
	Aim      lipgloss.Color
	Exit     lipgloss.Color
	Fuel     lipgloss.Color
	Bomb     lipgloss.Color
	Planet   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
}

var (
	ThemeGrey = Theme{
		Name:     "grey",
		Field:    lipgloss.Color("#5f5f5f"),
		Ship:     lipgloss.Color("#ffffff"),
		Particle: lipgloss.Color("#00ccff"),
		Aim:      lipgloss.Color("#ffff00"),
		Exit:     lipgloss.Color("#00ff88"),
		Fuel:     lipgloss.Color("#ffaa00"),
		Bomb:     lipgloss.Color("#ff4444"),
		Planet:   lipgloss.Color("#aa88ff"),
		Text:     lipgloss.Color("#e0e0e0"),
		Muted:    lipgloss.Color("#666688"),
		Success:  lipgloss.Color("#00ff88"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Field:    lipgloss.Color("#005500"),
		Ship:     lipgloss.Color("#88ff88"),
		Particle: lipgloss.Color("#00cc00"),
		Aim:      lipgloss.Color("#ffff00"),
		Exit:     lipgloss.Color("#00ff00"),
		Fuel:     lipgloss.Color("#ccff66"),
		Bomb:     lipgloss.Color("#ff0000"),
		Planet:   lipgloss.Color("#66ffcc"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Success:  lipgloss.Color("#88ff88"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Field:    lipgloss.Color("#4488aa"),
		Ship:     lipgloss.Color("#ffd700"),
		Particle: lipgloss.Color("#e0f0ff"),
		Aim:      lipgloss.Color("#ffd700"),
		Exit:     lipgloss.Color("#00ff88"),
		Fuel:     lipgloss.Color("#ffcc00"),
		Bomb:     lipgloss.Color("#ff4444"),
		Planet:   lipgloss.Color("#00a8cc"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Success:  lipgloss.Color("#00ff88"),
		Error:    lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeGrey,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeGrey
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
