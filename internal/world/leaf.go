package world

// Direction names the edge of a leaf a subtree prefers when connecting outward.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirTop
	DirBottom
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Kind is the state of a leaf: *Terminal or *Internal.
type Kind interface {
	isKind()
}

// Terminal is an unsplit leaf. Room is an index into Tree.Rooms, or -1
// until rooms have been built.
type Terminal struct {
	Room int
}

// Internal is a split leaf with two children, given as indices into
// Tree.Leaves. Doors holds the doors created while joining the children.
type Internal struct {
	Left, Right int
	Doors       []Door
}

func (*Terminal) isKind() {}
func (*Internal) isKind() {}

// Leaf is one region of the partition.
type Leaf struct {
	Bounds     Rect
	ConnectDir Direction
	Kind       Kind
}

// IsTerminal returns true if the leaf has not been split.
func (l *Leaf) IsTerminal() bool {
	_, ok := l.Kind.(*Terminal)
	return ok
}

// Children returns the indices of the leaf's children.
func (l *Leaf) Children() (left, right int, ok bool) {
	in, ok := l.Kind.(*Internal)
	if !ok {
		return -1, -1, false
	}
	return in.Left, in.Right, true
}

// Doors returns the doors owned by the leaf. Terminal leaves own none.
func (l *Leaf) Doors() []Door {
	if in, ok := l.Kind.(*Internal); ok {
		return in.Doors
	}
	return nil
}
