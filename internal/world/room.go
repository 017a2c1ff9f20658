package world

// Room is the carved floor of a terminal leaf.
type Room struct {
	Rect
	// Connections holds indices into Tree.Rooms of rooms linked by a door.
	Connections []int
}

// Door is a paintable opening in a shared wall. It is one cell thick.
type Door struct {
	Rect
	// Rooms holds the indices of the two rooms the door joins.
	Rooms [2]int
}

// Vertical reports whether the door runs along a vertical wall.
func (d Door) Vertical() bool {
	return d.Width < d.Height
}
