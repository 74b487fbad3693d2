// Package theme provides theme definitions and management for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	AddedFg    lipgloss.Color // diff + lines
	RemovedFg  lipgloss.Color // diff - lines
	HunkFg     lipgloss.Color // diff @@ headers
}

// Theme names.
const (
	DraculaName     = "dracula"
	NordName        = "nord"
	GruvboxDarkName = "gruvbox-dark"
	SolarizedLtName = "solarized-light"
	CatppuccinMocha = "catppuccin-mocha"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"),
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		Border:     lipgloss.Color("#6272A4"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		AddedFg:    lipgloss.Color("#50FA7B"),
		RemovedFg:  lipgloss.Color("#FF5555"),
		HunkFg:     lipgloss.Color("#8BE9FD"),
	}
}

// Nord returns the Nord theme (arctic, bluish palette).
func Nord() *Theme {
	return &Theme{
		Background: lipgloss.Color("#2E3440"),
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		Border:     lipgloss.Color("#4C566A"),
		MutedFg:    lipgloss.Color("#616E88"),
		TextFg:     lipgloss.Color("#ECEFF4"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		AddedFg:    lipgloss.Color("#A3BE8C"),
		RemovedFg:  lipgloss.Color("#BF616A"),
		HunkFg:     lipgloss.Color("#81A1C1"),
	}
}

// GruvboxDark returns the Gruvbox dark theme (warm, retro colors).
func GruvboxDark() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282828"),
		Accent:     lipgloss.Color("#D3869B"),
		AccentFg:   lipgloss.Color("#282828"),
		Border:     lipgloss.Color("#665C54"),
		MutedFg:    lipgloss.Color("#928374"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		SuccessFg:  lipgloss.Color("#B8BB26"),
		WarnFg:     lipgloss.Color("#FABD2F"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		AddedFg:    lipgloss.Color("#B8BB26"),
		RemovedFg:  lipgloss.Color("#FB4934"),
		HunkFg:     lipgloss.Color("#83A598"),
	}
}

// SolarizedLight returns the Solarized light theme.
func SolarizedLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FDF6E3"),
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#FDF6E3"),
		Border:     lipgloss.Color("#93A1A1"),
		MutedFg:    lipgloss.Color("#93A1A1"),
		TextFg:     lipgloss.Color("#657B83"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
		AddedFg:    lipgloss.Color("#859900"),
		RemovedFg:  lipgloss.Color("#DC322F"),
		HunkFg:     lipgloss.Color("#2AA198"),
	}
}

// CatppuccinMochaTheme returns the Catppuccin Mocha theme.
func CatppuccinMochaTheme() *Theme {
	return &Theme{
		Background: lipgloss.Color("#1E1E2E"),
		Accent:     lipgloss.Color("#CBA6F7"),
		AccentFg:   lipgloss.Color("#1E1E2E"),
		Border:     lipgloss.Color("#585B70"),
		MutedFg:    lipgloss.Color("#6C7086"),
		TextFg:     lipgloss.Color("#CDD6F4"),
		SuccessFg:  lipgloss.Color("#A6E3A1"),
		WarnFg:     lipgloss.Color("#F9E2AF"),
		ErrorFg:    lipgloss.Color("#F38BA8"),
		AddedFg:    lipgloss.Color("#A6E3A1"),
		RemovedFg:  lipgloss.Color("#F38BA8"),
		HunkFg:     lipgloss.Color("#89B4FA"),
	}
}

// ByName returns the theme registered under name, or nil when unknown.
func ByName(name string) *Theme {
	switch name {
	case DraculaName:
		return Dracula()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case SolarizedLtName:
		return SolarizedLight()
	case CatppuccinMocha:
		return CatppuccinMochaTheme()
	default:
		return nil
	}
}

// AvailableThemes returns the names of all registered themes.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		NordName,
		GruvboxDarkName,
		SolarizedLtName,
		CatppuccinMocha,
	}
}
