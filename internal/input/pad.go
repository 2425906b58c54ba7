package input

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Button is an on-screen control.
type Button int

const (
	ButtonNone Button = iota
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonRestart
)

// Label returns the text drawn inside the button.
func (b Button) Label() string {
	switch b {
	case ButtonUp:
		return " ▲ "
	case ButtonDown:
		return " ▼ "
	case ButtonLeft:
		return " ◀ "
	case ButtonRight:
		return " ▶ "
	case ButtonRestart:
		return " Restart "
	default:
		return ""
	}
}

// Direction returns the direction a button applies.
func (b Button) Direction() (snake.Direction, bool) {
	switch b {
	case ButtonUp:
		return snake.DirUp, true
	case ButtonDown:
		return snake.DirDown, true
	case ButtonLeft:
		return snake.DirLeft, true
	case ButtonRight:
		return snake.DirRight, true
	}
	return 0, false
}

// Pad maps screen rectangles to buttons.
type Pad struct {
	Buttons map[Button]core.Rect
}

// buttonW is the width of a direction button including its border.
const buttonW = 5

// NewPad lays out a cross-shaped D-pad with a restart button to its right.
// (x, y) is the top-left of the pad. Buttons are one row tall, so the pad
// spans PadHeight rows and PadWidth columns.
func NewPad(x, y int) Pad {
	restartW := len([]rune(ButtonRestart.Label())) + 2
	return Pad{
		Buttons: map[Button]core.Rect{
			ButtonUp:      core.NewRect(x+buttonW, y, buttonW, 1),
			ButtonLeft:    core.NewRect(x, y+1, buttonW, 1),
			ButtonRight:   core.NewRect(x+2*buttonW, y+1, buttonW, 1),
			ButtonDown:    core.NewRect(x+buttonW, y+2, buttonW, 1),
			ButtonRestart: core.NewRect(x+3*buttonW+2, y+1, restartW, 1),
		},
	}
}

// PadWidth is the total width NewPad occupies.
func PadWidth() int {
	return 3*buttonW + 2 + len([]rune(ButtonRestart.Label())) + 2
}

// PadHeight is the number of rows NewPad occupies.
const PadHeight = 3

// Hit returns the button covering cell (x, y).
func (p Pad) Hit(x, y int) Button {
	for b, r := range p.Buttons {
		if r.Contains(x, y) {
			return b
		}
	}
	return ButtonNone
}
