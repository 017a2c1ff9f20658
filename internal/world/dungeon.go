package world

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bspmaze/internal/ctxlog"
	"github.com/samdwyer/bspmaze/internal/rng"
	"github.com/samdwyer/bspmaze/internal/telemetry"
)

// Dungeon is one generation run: its config, partition tree and grid.
type Dungeon struct {
	Config Config
	Tree   *Tree
	Grid   *Grid
}

// NewDungeon validates cfg and returns an ungenerated dungeon.
func NewDungeon(cfg Config) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dungeon{Config: cfg}, nil
}

// Generate builds the dungeon from a fresh random stream seeded with
// Config.Seed.
func (d *Dungeon) Generate(ctx context.Context) error {
	return d.GenerateWith(ctx, rng.New(d.Config.Seed))
}

// GenerateWith builds the dungeon drawing all randomness from src.
func (d *Dungeon) GenerateWith(ctx context.Context, src *rng.Source) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	_, partSpan := tracer.Start(ctx, "maze.partition")
	d.Tree = NewTree(d.Config, src, d.Config.Region())
	partSpan.SetAttributes(attribute.Int("maze.leaves", len(d.Tree.Leaves)))
	partSpan.End()

	_, rasterSpan := tracer.Start(ctx, "maze.rasterize")
	d.Grid = Rasterize(d.Tree, d.Config.MapWidth, d.Config.MapHeight)
	rasterSpan.End()

	doors := len(d.Tree.Doors())
	span.SetAttributes(
		attribute.Int64("maze.seed", d.Config.Seed),
		attribute.Int("maze.width", d.Config.MapWidth),
		attribute.Int("maze.height", d.Config.MapHeight),
		attribute.Int("maze.leaves", len(d.Tree.Leaves)),
		attribute.Int("maze.room_count", len(d.Tree.Rooms)),
		attribute.Int("maze.door_count", doors),
		attribute.Int("maze.random_draws", src.Draws()),
		attribute.Int64("maze.generation_us", time.Since(startTime).Microseconds()),
	)

	ctxlog.FromContext(ctx).Debug("Maze generated",
		"seed", d.Config.Seed,
		"leaves", len(d.Tree.Leaves),
		"rooms", len(d.Tree.Rooms),
		"doors", doors,
	)
	return nil
}

// Generate validates cfg, runs one generation and returns the grid.
func Generate(ctx context.Context, cfg Config) (*Grid, error) {
	d, err := NewDungeon(cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Generate(ctx); err != nil {
		return nil, err
	}
	return d.Grid, nil
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	if d.Tree == nil {
		return -1
	}
	for i, room := range d.Tree.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}
