package world

import "github.com/samdwyer/bspmaze/internal/rng"

// Tree is the partition of the map region. Leaves is an arena in
// breadth-first creation order with the root at index 0.
type Tree struct {
	Leaves []Leaf
	Rooms  []Room

	cfg Config
	rng *rng.Source
}

// NewTree partitions bounds and builds rooms and doors, drawing all
// randomness from src.
func NewTree(cfg Config, src *rng.Source, bounds Rect) *Tree {
	t := &Tree{cfg: cfg, rng: src}
	t.Leaves = append(t.Leaves, Leaf{
		Bounds:     bounds,
		ConnectDir: DirLeft,
		Kind:       &Terminal{Room: -1},
	})

	// Breadth-first splitting. A split adds two leaves, so stop while there
	// is still room for both.
	for i := 0; i < len(t.Leaves) && len(t.Leaves)+2 <= cfg.MaxLeavesCount; i++ {
		t.split(i)
	}

	t.createRooms(0)
	return t
}

// split divides leaf i in two. It returns false if the leaf is left whole.
func (t *Tree) split(i int) bool {
	leaf := &t.Leaves[i]
	if !leaf.IsTerminal() {
		return false
	}
	b := leaf.Bounds

	// Some regions below MaxSize stay whole and become large rooms
	if t.rng.Float64() < t.cfg.QuitRate && max(b.Width, b.Height) < t.cfg.MaxSize {
		return false
	}

	splitTopBottom := b.Height > b.Width
	length := b.Width
	if splitTopBottom {
		length = b.Height
	}
	hi := length - t.cfg.MinSize
	if hi <= t.cfg.MinSize {
		return false
	}
	pos := t.rng.Range(t.cfg.MinSize, hi)

	var first, second Leaf
	if splitTopBottom {
		first = Leaf{
			Bounds:     Rect{X: b.X, Y: b.Y, Width: b.Width, Height: pos},
			ConnectDir: DirBottom,
		}
		second = Leaf{
			Bounds:     Rect{X: b.X, Y: b.Y + pos, Width: b.Width, Height: b.Height - pos},
			ConnectDir: DirTop,
		}
	} else {
		first = Leaf{
			Bounds:     Rect{X: b.X, Y: b.Y, Width: pos, Height: b.Height},
			ConnectDir: DirRight,
		}
		second = Leaf{
			Bounds:     Rect{X: b.X + pos, Y: b.Y, Width: b.Width - pos, Height: b.Height},
			ConnectDir: DirLeft,
		}
	}
	first.Kind = &Terminal{Room: -1}
	second.Kind = &Terminal{Room: -1}

	left := len(t.Leaves)
	t.Leaves = append(t.Leaves, first, second)
	t.Leaves[i].Kind = &Internal{Left: left, Right: left + 1}
	return true
}

// createRooms builds rooms in post-order: children first, then the door
// joining them.
func (t *Tree) createRooms(i int) {
	switch k := t.Leaves[i].Kind.(type) {
	case *Internal:
		t.createRooms(k.Left)
		t.createRooms(k.Right)
		t.connect(k)
	case *Terminal:
		b := t.Leaves[i].Bounds
		// Leave a wall on the trailing edges
		k.Room = len(t.Rooms)
		t.Rooms = append(t.Rooms, Room{Rect: Rect{
			X:      b.X,
			Y:      b.Y,
			Width:  max(b.Width, t.cfg.MinSize) - 1,
			Height: max(b.Height, t.cfg.MinSize) - 1,
		}})
	}
}

// connect places a door between the two subtrees of an internal leaf. The
// anchor is the left subtree's room nearest its outward edge; the partner is
// a room of the right subtree sharing a wall with it. Subtrees with no such
// pair stay unconnected at this level.
func (t *Tree) connect(k *Internal) {
	anchor, ok := t.roomToward(k.Left, t.Leaves[k.Left].ConnectDir)
	if !ok {
		return
	}
	partner, ok := t.roomNextTo(k.Right, anchor)
	if !ok {
		return
	}
	t.createDoor(k, anchor, partner)
}

// roomToward returns the room of subtree i furthest toward edge dir. Ties go
// to the left child. An unknown direction picks a child at random.
func (t *Tree) roomToward(i int, dir Direction) (int, bool) {
	switch k := t.Leaves[i].Kind.(type) {
	case *Terminal:
		return k.Room, k.Room >= 0
	case *Internal:
		l, lok := t.roomToward(k.Left, dir)
		r, rok := t.roomToward(k.Right, dir)
		switch {
		case !lok && !rok:
			return -1, false
		case !rok:
			return l, true
		case !lok:
			return r, true
		}

		lr, rr := t.Rooms[l].Rect, t.Rooms[r].Rect
		var pickRight bool
		switch dir {
		case DirLeft:
			pickRight = rr.X < lr.X
		case DirRight:
			pickRight = rr.Right() > lr.Right()
		case DirTop:
			pickRight = rr.Y < lr.Y
		case DirBottom:
			pickRight = rr.Bottom() > lr.Bottom()
		default:
			pickRight = t.rng.Float64() < 0.5
		}
		if pickRight {
			return r, true
		}
		return l, true
	}
	return -1, false
}

// roomNextTo returns the first room of subtree i that shares a wall with
// room target. The right child is searched before the left.
func (t *Tree) roomNextTo(i int, target int) (int, bool) {
	switch k := t.Leaves[i].Kind.(type) {
	case *Terminal:
		if k.Room < 0 {
			return -1, false
		}
		if _, ok := SharedWall(t.Rooms[k.Room].Rect, t.Rooms[target].Rect); !ok {
			return -1, false
		}
		return k.Room, true
	case *Internal:
		if r, ok := t.roomNextTo(k.Right, target); ok {
			return r, true
		}
		return t.roomNextTo(k.Left, target)
	}
	return -1, false
}

// createDoor cuts a door into the wall shared by rooms a and b and records
// the connection on both rooms.
func (t *Tree) createDoor(k *Internal, a, b int) {
	wall, ok := SharedWall(t.Rooms[b].Rect, t.Rooms[a].Rect)
	if !ok {
		return
	}

	vertical := wall.Width < wall.Height
	length := wall.Width
	if vertical {
		length = wall.Height
	}
	width := t.doorWidth(length)
	margin := length - width
	if margin < 0 {
		return
	}
	offset := t.rng.IntN(margin)

	door := Door{Rooms: [2]int{a, b}}
	if vertical {
		door.Rect = Rect{X: wall.X, Y: wall.Y + offset, Width: 1, Height: width}
	} else {
		door.Rect = Rect{X: wall.X + offset, Y: wall.Y, Width: width, Height: 1}
	}

	k.Doors = append(k.Doors, door)
	t.Rooms[a].Connections = append(t.Rooms[a].Connections, b)
	t.Rooms[b].Connections = append(t.Rooms[b].Connections, a)
}

// doorWidth picks a door width for a wall of the given length using the
// configured single/double/hallway weights. Hallways span at least three
// cells, up to the whole wall.
func (t *Tree) doorWidth(length int) int {
	x := t.rng.IntN(t.cfg.doorWeightTotal())
	switch {
	case x < t.cfg.SingleDoorProb:
		return 1
	case x < t.cfg.SingleDoorProb+t.cfg.DoubleDoorProb:
		return min(2, length)
	case length >= 3:
		// Inclusive: a hallway may take the whole wall, leaving margin 0.
		return t.rng.Range(3, length)
	default:
		return length
	}
}

// Doors returns every door in leaf order.
func (t *Tree) Doors() []Door {
	var doors []Door
	for i := range t.Leaves {
		doors = append(doors, t.Leaves[i].Doors()...)
	}
	return doors
}

// TerminalCount returns the number of unsplit leaves.
func (t *Tree) TerminalCount() int {
	n := 0
	for i := range t.Leaves {
		if t.Leaves[i].IsTerminal() {
			n++
		}
	}
	return n
}

// Walk visits the subtree rooted at leaf i in post-order.
func (t *Tree) Walk(i int, fn func(index int, leaf *Leaf)) {
	if left, right, ok := t.Leaves[i].Children(); ok {
		t.Walk(left, fn)
		t.Walk(right, fn)
	}
	fn(i, &t.Leaves[i])
}
