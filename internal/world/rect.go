package world

// Rect is an axis-aligned rectangle in grid cells.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() && o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Intersects returns true if this rectangle overlaps another.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() &&
		r.Right() > o.X &&
		r.Y < o.Bottom() &&
		r.Bottom() > o.Y
}

// Expand grows the rectangle by n cells on every side.
func (r Rect) Expand(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Overlap returns the intersection of r and o. The extents are negative or
// zero when the rectangles do not overlap.
func (r Rect) Overlap(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  min(r.Right(), o.Right()) - x,
		Height: min(r.Bottom(), o.Bottom()) - y,
	}
}

// SharedWall returns the straight one-cell-thick wall segment separating a
// and b, excluding corner cells. ok is false when the rectangles are not
// separated by exactly one wall line or the segment is too short to hold a
// door.
func SharedWall(a, b Rect) (wall Rect, ok bool) {
	shared := a.Expand(1).Overlap(b.Expand(1))
	if shared.Width <= 0 || shared.Height <= 0 || shared.Area() < 3 {
		return Rect{}, false
	}

	// Strip the corner cells
	if shared.Width > 1 {
		shared.X++
		shared.Width -= 2
	}
	if shared.Height > 1 {
		shared.Y++
		shared.Height -= 2
	}

	if shared.Width != 1 && shared.Height != 1 {
		return Rect{}, false
	}
	return shared, true
}
