package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the heat ramp used to shade plates, from the initial
// temperature (Cold) to the current peak (Hot).
type Theme struct {
	Name string
	Cold lipgloss.Color
	Warm lipgloss.Color
	Hot  lipgloss.Color
}

// Available themes
var (
	ThemeInferno = Theme{
		Name: "inferno",
		Cold: lipgloss.Color("#000004"),
		Warm: lipgloss.Color("#bc3754"),
		Hot:  lipgloss.Color("#fcffa4"),
	}

	ThemeIron = Theme{
		Name: "iron",
		Cold: lipgloss.Color("#0b0b3b"), // deep blue
		Warm: lipgloss.Color("#e0301e"),
		Hot:  lipgloss.Color("#ffffcc"),
	}

	ThemeGray = Theme{
		Name: "gray",
		Cold: lipgloss.Color("#111111"),
		Warm: lipgloss.Color("#888888"),
		Hot:  lipgloss.Color("#ffffff"),
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Cold: lipgloss.Color("#001a33"),
		Warm: lipgloss.Color("#00a8cc"),
		Hot:  lipgloss.Color("#ffd700"),
	}

	// Default theme
	CurrentTheme = ThemeInferno

	// All available themes
	Themes = []Theme{
		ThemeInferno,
		ThemeIron,
		ThemeGray,
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
	return ThemeInferno
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
