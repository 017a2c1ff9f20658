package ui

import "github.com/samdwyer/bspmaze/internal/world"

// CursorRune marks the inspected cell.
const CursorRune = '@'

// Renderer handles drawing a grid to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the grid, the cursor and a status line on the last row. When
// the grid is larger than the screen the view scrolls to keep the cursor
// visible.
func (r *Renderer) Render(grid *world.Grid, cursorX, cursorY int, status string) {
	r.screen.Clear()

	width, height := r.screen.Size()
	viewH := max(height-1, 0)
	offX := viewOffset(cursorX, grid.Width, width)
	offY := viewOffset(cursorY, grid.Height, viewH)

	for y := 0; y < viewH && y+offY < grid.Height; y++ {
		for x := 0; x < width && x+offX < grid.Width; x++ {
			r.screen.SetContent(x, y, grid.At(x+offX, y+offY).Rune())
		}
	}
	r.screen.SetContent(cursorX-offX, cursorY-offY, CursorRune)

	r.RenderMessage(status, height-1)
	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch)
	}
}

// viewOffset returns the first visible index so that pos stays on screen.
func viewOffset(pos, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	off := pos - visible/2
	return max(0, min(off, total-visible))
}
