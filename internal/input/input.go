// Package input turns raw host events (key names, button presses, drag
// gestures) into snake directions. It knows nothing about Bubble Tea; the
// platform passes plain strings and coordinates.
package input

import (
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// DefaultSwipeThreshold is the minimum drag length, in units, along the
// dominant axis.
const DefaultSwipeThreshold = 30

// Keys bound to each direction. Letters are matched case-insensitively.
var (
	KeysUp    = []string{"up", "w"}
	KeysDown  = []string{"down", "s"}
	KeysLeft  = []string{"left", "a"}
	KeysRight = []string{"right", "d"}
)

// DirectionForKey maps an arrow key or WASD letter to a direction.
func DirectionForKey(key string) (snake.Direction, bool) {
	k := key
	if len([]rune(k)) == 1 {
		k = strings.ToLower(k)
	}
	switch {
	case contains(KeysUp, k):
		return snake.DirUp, true
	case contains(KeysDown, k):
		return snake.DirDown, true
	case contains(KeysLeft, k):
		return snake.DirLeft, true
	case contains(KeysRight, k):
		return snake.DirRight, true
	}
	return 0, false
}

// WithUppercase returns keys plus the uppercase form of every single letter.
func WithUppercase(keys []string) []string {
	out := append([]string(nil), keys...)
	for _, k := range keys {
		if len(k) == 1 {
			out = append(out, strings.ToUpper(k))
		}
	}
	return out
}

func contains(keys []string, k string) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}

// Swipe classifies a drag of (dx, dy) units. The axis with the larger
// magnitude wins and must exceed threshold; equal magnitudes are ambiguous.
// Positive dy points down, as on screen.
func Swipe(dx, dy, threshold int) (snake.Direction, bool) {
	ax, ay := core.Abs(dx), core.Abs(dy)
	switch {
	case ax > ay && ax > threshold:
		if dx > 0 {
			return snake.DirRight, true
		}
		return snake.DirLeft, true
	case ay > ax && ay > threshold:
		if dy > 0 {
			return snake.DirDown, true
		}
		return snake.DirUp, true
	}
	return 0, false
}

// Gesture tracks one press/release drag in terminal cells and converts it
// to swipe units.
type Gesture struct {
	UnitsPerCol int
	UnitsPerRow int
	Threshold   int

	active bool
	startX int
	startY int
}

// NewGesture returns a tracker with the given cell scale and threshold.
func NewGesture(unitsPerCol, unitsPerRow, threshold int) Gesture {
	return Gesture{
		UnitsPerCol: unitsPerCol,
		UnitsPerRow: unitsPerRow,
		Threshold:   threshold,
	}
}

// Press records the start of a drag.
func (g *Gesture) Press(x, y int) {
	g.active = true
	g.startX, g.startY = x, y
}

// Active reports whether a press is pending.
func (g *Gesture) Active() bool {
	return g.active
}

// Cancel forgets a pending press.
func (g *Gesture) Cancel() {
	g.active = false
}

// Release ends the drag and returns the swiped direction, if any.
// A release without a press yields nothing.
func (g *Gesture) Release(x, y int) (snake.Direction, bool) {
	if !g.active {
		return 0, false
	}
	g.active = false
	dx := (x - g.startX) * g.UnitsPerCol
	dy := (y - g.startY) * g.UnitsPerRow
	return Swipe(dx, dy, g.Threshold)
}
