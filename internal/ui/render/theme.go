package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	ErrorFg   tcell.Color
	NoticeFg  tcell.Color
	MutedFg   tcell.Color
	SpinnerFg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		ErrorFg:   tcell.ColorRed,
		NoticeFg:  tcell.ColorGreen,
		MutedFg:   tcell.ColorGray,
		SpinnerFg: tcell.Color33,
	}
}
