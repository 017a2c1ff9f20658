package world

import "fmt"

// Config holds the generation parameters.
type Config struct {
	// Seed for the random stream. Same seed and config give the same grid.
	Seed int64

	MapWidth  int
	MapHeight int

	// MaxLeavesCount caps the number of partition nodes, internal ones included.
	MaxLeavesCount int

	// MinSize is the smallest extent a split may leave on either side.
	MinSize int
	// MaxSize is the extent below which a region may stop splitting early.
	MaxSize int
	// QuitRate is the chance that a region under MaxSize stops splitting.
	QuitRate float64

	// Relative weights for door width selection.
	SingleDoorProb  int
	DoubleDoorProb  int
	HallwayDoorProb int
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() Config {
	return Config{
		Seed:            101,
		MapWidth:        40,
		MapHeight:       40,
		MaxLeavesCount:  100,
		MinSize:         6,
		MaxSize:         20,
		QuitRate:        0.1,
		SingleDoorProb:  2,
		DoubleDoorProb:  2,
		HallwayDoorProb: 1,
	}
}

// ConfigError reports a configuration value generation cannot work with.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration. It does not reject configurations that
// merely produce degenerate maps, such as a MinSize larger than the map.
func (c Config) Validate() error {
	switch {
	case c.MapWidth < 1:
		return &ConfigError{Field: "MapWidth", Reason: fmt.Sprintf("must be at least 1, got %d", c.MapWidth)}
	case c.MapHeight < 1:
		return &ConfigError{Field: "MapHeight", Reason: fmt.Sprintf("must be at least 1, got %d", c.MapHeight)}
	case c.MaxLeavesCount < 1:
		return &ConfigError{Field: "MaxLeavesCount", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxLeavesCount)}
	case c.MinSize < 1:
		return &ConfigError{Field: "MinSize", Reason: fmt.Sprintf("must be at least 1, got %d", c.MinSize)}
	case c.QuitRate < 0 || c.QuitRate > 1:
		return &ConfigError{Field: "QuitRate", Reason: fmt.Sprintf("must be within [0,1], got %g", c.QuitRate)}
	case c.SingleDoorProb < 0 || c.DoubleDoorProb < 0 || c.HallwayDoorProb < 0:
		return &ConfigError{Field: "DoorProb", Reason: "door weights must not be negative"}
	case c.doorWeightTotal() == 0:
		return &ConfigError{Field: "DoorProb", Reason: "door weights sum to zero"}
	}
	return nil
}

func (c Config) doorWeightTotal() int {
	return c.SingleDoorProb + c.DoubleDoorProb + c.HallwayDoorProb
}

// Region returns the rectangle partitioned by the tree: the map inset by one
// cell on the low side.
func (c Config) Region() Rect {
	return Rect{X: 1, Y: 1, Width: c.MapWidth - 1, Height: c.MapHeight - 1}
}
