package server

import "github.com/samdwyer/bspmaze/internal/world"

// MapDocument is the wire form of a generated map.
type MapDocument struct {
	Seed   int64      `json:"seed" msgpack:"seed"`
	Width  int        `json:"width" msgpack:"width"`
	Height int        `json:"height" msgpack:"height"`
	Rows   []string   `json:"rows" msgpack:"rows"`
	Rooms  []RoomInfo `json:"rooms" msgpack:"rooms"`
	Doors  []DoorInfo `json:"doors" msgpack:"doors"`
}

// RoomInfo describes one room and the rooms it has doors to.
type RoomInfo struct {
	X           int   `json:"x" msgpack:"x"`
	Y           int   `json:"y" msgpack:"y"`
	Width       int   `json:"width" msgpack:"width"`
	Height      int   `json:"height" msgpack:"height"`
	Connections []int `json:"connections" msgpack:"connections"`
}

// DoorInfo describes one door and the two rooms it joins.
type DoorInfo struct {
	X      int    `json:"x" msgpack:"x"`
	Y      int    `json:"y" msgpack:"y"`
	Width  int    `json:"width" msgpack:"width"`
	Height int    `json:"height" msgpack:"height"`
	Rooms  [2]int `json:"rooms" msgpack:"rooms"`
}

// newMapDocument converts a generated dungeon.
func newMapDocument(d *world.Dungeon) MapDocument {
	doc := MapDocument{
		Seed:   d.Config.Seed,
		Width:  d.Grid.Width,
		Height: d.Grid.Height,
		Rows:   d.Grid.Rows(),
		Rooms:  make([]RoomInfo, 0, len(d.Tree.Rooms)),
	}
	for _, r := range d.Tree.Rooms {
		conns := r.Connections
		if conns == nil {
			conns = []int{}
		}
		doc.Rooms = append(doc.Rooms, RoomInfo{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Connections: conns})
	}
	doors := d.Tree.Doors()
	doc.Doors = make([]DoorInfo, 0, len(doors))
	for _, dr := range doors {
		doc.Doors = append(doc.Doors, DoorInfo{X: dr.X, Y: dr.Y, Width: dr.Width, Height: dr.Height, Rooms: dr.Rooms})
	}
	return doc
}
