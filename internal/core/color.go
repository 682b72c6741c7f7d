package core

// Color represents a foreground color for a screen cell.
// Hosts map these to ANSI 256-color codes.
type Color uint8

// Palette used by the renderer. ColorDefault leaves the terminal color alone.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
	ColorBrown
)
