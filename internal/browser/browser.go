// Package browser is an interactive terminal viewer for stepping through
// seeds and inspecting generated maps.
package browser

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bspmaze/internal/ctxlog"
	"github.com/samdwyer/bspmaze/internal/telemetry"
	"github.com/samdwyer/bspmaze/internal/ui"
	"github.com/samdwyer/bspmaze/internal/world"
)

// Browser holds the viewer state.
type Browser struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	config   world.Config
	dungeon  *world.Dungeon
	cursorX  int
	cursorY  int
	running  bool
}

// New creates a browser showing maps generated from cfg on screen.
func New(screen *ui.Screen, cfg world.Config) *Browser {
	return &Browser{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		config:   cfg,
		running:  true,
	}
}

// Run executes the main loop until the user quits. The screen is closed on
// every return path.
func (b *Browser) Run(ctx context.Context) error {
	defer b.screen.Close()

	if err := b.regenerate(ctx); err != nil {
		return err
	}

	for b.running {
		b.render()
		if err := b.handleInput(ctx); err != nil {
			return err
		}
	}
	return nil
}

// regenerate builds the map for the current seed and centers the cursor in
// the first room.
func (b *Browser) regenerate(ctx context.Context) error {
	tracer := telemetry.Tracer("browser")
	ctx, span := tracer.Start(ctx, "browser.regenerate")
	defer span.End()

	d, err := world.NewDungeon(b.config)
	if err != nil {
		return err
	}
	if err := d.Generate(ctx); err != nil {
		return err
	}
	b.dungeon = d

	if len(d.Tree.Rooms) > 0 {
		b.cursorX, b.cursorY = d.Tree.Rooms[0].Center()
	} else {
		b.cursorX, b.cursorY = d.Grid.Width/2, d.Grid.Height/2
	}

	span.SetAttributes(attribute.Int64("maze.seed", b.config.Seed))
	ctxlog.FromContext(ctx).Debug("Browsing seed", "seed", b.config.Seed)
	return nil
}

func (b *Browser) render() {
	b.renderer.Render(b.dungeon.Grid, b.cursorX, b.cursorY, b.status())
}

// status describes the current seed and the cell under the cursor.
func (b *Browser) status() string {
	tree := b.dungeon.Tree
	s := fmt.Sprintf("seed %d  rooms %d  doors %d  (%d,%d) %c",
		b.config.Seed, len(tree.Rooms), len(tree.Doors()),
		b.cursorX, b.cursorY, b.dungeon.Grid.At(b.cursorX, b.cursorY).Rune())
	if i := b.dungeon.RoomIndexAt(b.cursorX, b.cursorY); i >= 0 {
		s += fmt.Sprintf("  room %d links %v", i, tree.Rooms[i].Connections)
	}
	return s + "  [n]ext [p]rev [q]uit"
}

// handleInput processes a single input event.
func (b *Browser) handleInput(ctx context.Context) error {
	ev := b.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return b.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		b.screen.Sync()
	case nil:
		// Screen finalized
		b.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (b *Browser) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		b.running = false

	case tcell.KeyUp:
		b.moveCursor(0, -1)
	case tcell.KeyDown:
		b.moveCursor(0, 1)
	case tcell.KeyLeft:
		b.moveCursor(-1, 0)
	case tcell.KeyRight:
		b.moveCursor(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			b.running = false
		case 'n', 'N':
			return b.stepSeed(ctx, 1)
		case 'p', 'P':
			return b.stepSeed(ctx, -1)
		}
	}
	return nil
}

// stepSeed moves to a neighboring seed and regenerates.
func (b *Browser) stepSeed(ctx context.Context, delta int64) error {
	b.config.Seed += delta
	return b.regenerate(ctx)
}

// moveCursor moves the cursor, keeping it on the grid.
func (b *Browser) moveCursor(dx, dy int) {
	grid := b.dungeon.Grid
	b.cursorX = max(0, min(b.cursorX+dx, grid.Width-1))
	b.cursorY = max(0, min(b.cursorY+dy, grid.Height-1))
}
