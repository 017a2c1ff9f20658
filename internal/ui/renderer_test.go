package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/bspmaze/internal/world"
)

func TestRenderDrawsGridCursorAndStatus(t *testing.T) {
	screen, err := NewSimulationScreen(20, 10)
	require.NoError(t, err)
	defer screen.Close()

	grid := world.NewGrid(5, 4)
	grid.Cells[1][1] = world.TileFloor
	grid.Cells[1][2] = world.TileDoor

	NewRenderer(screen).Render(grid, 3, 2, "seed 1")

	assert.Equal(t, '#', screen.RuneAt(0, 0))
	assert.Equal(t, '.', screen.RuneAt(1, 1))
	assert.Equal(t, 'o', screen.RuneAt(2, 1))
	assert.Equal(t, CursorRune, screen.RuneAt(3, 2))
	assert.Equal(t, 's', screen.RuneAt(0, 9))
	assert.Equal(t, '1', screen.RuneAt(5, 9))
}

func TestViewOffset(t *testing.T) {
	assert.Equal(t, 0, viewOffset(5, 10, 20))
	assert.Equal(t, 0, viewOffset(2, 100, 20))
	assert.Equal(t, 40, viewOffset(50, 100, 20))
	assert.Equal(t, 80, viewOffset(99, 100, 20))
}

func TestCloseIsIdempotent(t *testing.T) {
	screen, err := NewSimulationScreen(20, 10)
	require.NoError(t, err)

	assert.False(t, screen.Closed())
	screen.Close()
	screen.Close()
	assert.True(t, screen.Closed())
}
