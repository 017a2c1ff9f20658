package world

import "strings"

// Grid is the rasterized map. Cells is indexed [y][x].
type Grid struct {
	Width  int
	Height int
	Cells  [][]Tile
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	cells := make([][]Tile, height)
	for y := range cells {
		cells[y] = make([]Tile, width)
		for x := range cells[y] {
			cells[y][x] = TileWall
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Rasterize paints every room as floor, then every door, onto a fresh grid.
// Doors go last so no room covers them.
func Rasterize(t *Tree, width, height int) *Grid {
	g := NewGrid(width, height)
	for _, room := range t.Rooms {
		g.fill(room.Rect, TileFloor)
	}
	for i := range t.Leaves {
		for _, door := range t.Leaves[i].Doors() {
			g.fill(door.Rect, TileDoor)
		}
	}
	return g
}

// fill sets every in-bounds cell of r to tile.
func (g *Grid) fill(r Rect, tile Tile) {
	for y := max(r.Y, 0); y < min(r.Bottom(), g.Height); y++ {
		for x := max(r.X, 0); x < min(r.Right(), g.Width); x++ {
			g.Cells[y][x] = tile
		}
	}
}

// At returns the tile at the given position. Out of bounds is wall.
func (g *Grid) At(x, y int) Tile {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return TileWall
	}
	return g.Cells[y][x]
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	return g.At(x, y).IsPassable()
}

// Count returns how many cells hold tile.
func (g *Grid) Count(tile Tile) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == tile {
				n++
			}
		}
	}
	return n
}

// Rows returns the grid as one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y, row := range g.Cells {
		sb.Reset()
		for _, c := range row {
			sb.WriteRune(c.Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the grid as newline separated rows.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
