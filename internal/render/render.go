// Package render draws engine snapshots into a core.Screen: HUD, board,
// food, snake, on-screen buttons and overlays.
package render

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Glyphs used on the board.
const (
	GlyphHead  = '█'
	GlyphBody  = '▓'
	GlyphFood  = '●'
	GlyphEmpty = '·'
)

// UI carries host-side status that is not part of the engine state.
type UI struct {
	Title   string
	Best    int  // best score this session
	Paused  bool
	Message string // optional footer line, e.g. a storage warning
}

// Draw renders st into dst using lay. dst is cleared first.
func Draw(dst *core.Screen, st snake.State, lay layout.Layout, ui UI) {
	dst.Clear()
	drawHUD(dst, st, ui)

	if lay.TooSmall {
		drawOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	drawBoard(dst, lay)
	drawFood(dst, st, lay)
	drawSnake(dst, st, lay)
	if lay.PadVisible {
		drawPad(dst, lay.Pad)
	}
	drawFooter(dst, lay, ui)

	switch {
	case st.Over():
		drawOverlay(dst, "Game Over", fmt.Sprintf("Final Score: %d", st.Score), "Press R to restart")
	case ui.Paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawHUD draws the top status bar and separator.
func drawHUD(dst *core.Screen, st snake.State, ui UI) {
	title := ui.Title
	if title == "" {
		title = "Snake"
	}
	hud := fmt.Sprintf(" %s — Score: %d  Best: %d  Length: %d", title, st.Score, max(ui.Best, st.Score), st.Len())
	dst.DrawText(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorBoard)
}

// drawBoard draws the frame and the empty grid background.
func drawBoard(dst *core.Screen, lay layout.Layout) {
	dst.DrawBox(lay.Frame, core.ColorBoard)
	for y := lay.Board.Y; y < lay.Board.Bottom(); y++ {
		for x := lay.Board.X; x < lay.Board.Right(); x += lay.TileW {
			dst.SetColor(x, y, GlyphEmpty, core.ColorBoard)
		}
	}
}

func drawFood(dst *core.Screen, st snake.State, lay layout.Layout) {
	c := lay.Cell(st.Food.X, st.Food.Y)
	dst.DrawRect(c, ' ', core.ColorFood)
	// One glyph per tile row, centred horizontally.
	for y := c.Y; y < c.Bottom(); y++ {
		dst.SetColor(c.X+(c.W-1)/2, y, GlyphFood, core.ColorFood)
	}
}

// drawSnake draws body segments first so the head is never hidden.
func drawSnake(dst *core.Screen, st snake.State, lay layout.Layout) {
	for i := len(st.Snake) - 1; i >= 0; i-- {
		seg := st.Snake[i]
		glyph, color := GlyphBody, core.ColorBody
		if i == 0 {
			glyph, color = GlyphHead, core.ColorHead
		}
		dst.DrawRect(lay.Cell(seg.X, seg.Y), glyph, color)
	}
}

func drawPad(dst *core.Screen, pad input.Pad) {
	for b, r := range pad.Buttons {
		dst.SetColor(r.X, r.Y, '[', core.ColorButton)
		dst.DrawText(r.X+1, r.Y, b.Label(), core.ColorButton)
		dst.SetColor(r.Right()-1, r.Y, ']', core.ColorButton)
	}
}

// drawFooter writes the message line below the board or pad.
func drawFooter(dst *core.Screen, lay layout.Layout, ui UI) {
	if ui.Message == "" {
		return
	}
	y := lay.Frame.Bottom()
	if lay.PadVisible {
		y += input.PadHeight + 1
	}
	dst.DrawTextCentered(y, ui.Message, core.ColorWarning)
}

// drawOverlay draws a centered box with one line per entry.
func drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorOverlay)
	dst.DrawBox(box, core.ColorOverlay)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, core.ColorOverlay)
	}
}
