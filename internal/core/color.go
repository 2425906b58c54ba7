package core

// Color is a foreground colour for a screen cell.
// The platform maps each value to an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightWhite
)

// Board palette.
const (
	ColorBoard   = ColorGray
	ColorFood    = ColorBrightRed
	ColorHead    = ColorBrightGreen
	ColorBody    = ColorGreen
	ColorHUD     = ColorBrightWhite
	ColorButton  = ColorCyan
	ColorOverlay = ColorYellow
	ColorWarning = ColorRed
)
