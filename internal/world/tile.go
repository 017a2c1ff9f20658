// Package world provides BSP maze generation: partitioning, room and door
// placement, and rasterization onto a tile grid.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents room floor.
	TileFloor Tile = '.'
	// TileDoor represents a door cut through a shared wall.
	TileDoor Tile = 'o'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileDoor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
