// Package layout sizes the board for the current terminal.
//
// Terminal cells are roughly twice as tall as they are wide, so a square
// tile is 2*h columns by h rows. Layout is pure presentation: it never
// touches the grid size or any engine state.
package layout

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
)

// Rows reserved above the board for the score line and separator.
const HUDRows = 2

// Options control the sizing rules.
type Options struct {
	MinTile int  // smallest tile height in rows; the board floor is grid*MinTile
	ShowPad bool // reserve room for the on-screen buttons when it fits
}

// DefaultOptions returns a one-row tile floor with the pad enabled.
func DefaultOptions() Options {
	return Options{MinTile: 1, ShowPad: true}
}

// Layout is the computed placement of every screen element.
type Layout struct {
	ViewW, ViewH int
	TileW, TileH int       // terminal cells per grid tile
	Board        core.Rect // inner board area, excluding its frame
	Frame        core.Rect // board plus a one-cell border
	Pad          input.Pad // on-screen buttons; empty when hidden
	PadVisible   bool
	TooSmall     bool
}

// Compute sizes a grid x grid board for a viewW x viewH terminal.
func Compute(viewW, viewH, grid int, opts Options) Layout {
	l := Layout{ViewW: viewW, ViewH: viewH}
	if opts.MinTile < 1 {
		opts.MinTile = 1
	}
	if grid <= 0 {
		l.TooSmall = true
		return l
	}

	// Frame takes one cell on each side.
	availW := viewW - 2
	availH := viewH - HUDRows - 2

	padRows := 0
	if opts.ShowPad && fits(availW, availH-input.PadHeight-1, grid, opts.MinTile) &&
		viewW >= input.PadWidth() {
		padRows = input.PadHeight + 1
	}
	availH -= padRows

	tileH := min(availH/grid, availW/(2*grid))
	if tileH < opts.MinTile {
		l.TooSmall = true
		return l
	}

	l.TileH = tileH
	l.TileW = 2 * tileH

	boardW := grid * l.TileW
	boardH := grid * l.TileH
	frameX := (viewW - (boardW + 2)) / 2
	frameY := HUDRows

	l.Frame = core.NewRect(frameX, frameY, boardW+2, boardH+2)
	l.Board = core.NewRect(frameX+1, frameY+1, boardW, boardH)

	if padRows > 0 {
		padX := (viewW - input.PadWidth()) / 2
		l.Pad = input.NewPad(padX, l.Frame.Bottom()+1)
		l.PadVisible = true
	}
	return l
}

func fits(availW, availH, grid, minTile int) bool {
	return availH/grid >= minTile && availW/(2*grid) >= minTile
}

// Cell returns the screen rectangle for grid coordinate (gx, gy).
func (l Layout) Cell(gx, gy int) core.Rect {
	return core.NewRect(l.Board.X+gx*l.TileW, l.Board.Y+gy*l.TileH, l.TileW, l.TileH)
}

// OnBoard reports whether screen cell (x, y) lies on the board.
func (l Layout) OnBoard(x, y int) bool {
	return !l.TooSmall && l.Board.Contains(x, y)
}
