package config

import (
	"fmt"
	"strconv"

	"github.com/samdwyer/bspmaze/internal/rng"
	"github.com/samdwyer/bspmaze/internal/world"
)

// Overrides is a partial configuration. Nil fields leave the underlying
// value alone.
type Overrides struct {
	Seed            *string  `json:"seed,omitempty" hcl:"seed,optional"`
	MapWidth        *int     `json:"map_width,omitempty" hcl:"map_width,optional"`
	MapHeight       *int     `json:"map_height,omitempty" hcl:"map_height,optional"`
	MaxLeavesCount  *int     `json:"max_leaves_count,omitempty" hcl:"max_leaves_count,optional"`
	MinSize         *int     `json:"min_size,omitempty" hcl:"min_size,optional"`
	MaxSize         *int     `json:"max_size,omitempty" hcl:"max_size,optional"`
	QuitRate        *float64 `json:"quit_rate,omitempty" hcl:"quit_rate,optional"`
	SingleDoorProb  *int     `json:"single_door_prob,omitempty" hcl:"single_door_prob,optional"`
	DoubleDoorProb  *int     `json:"double_door_prob,omitempty" hcl:"double_door_prob,optional"`
	HallwayDoorProb *int     `json:"hallway_door_prob,omitempty" hcl:"hallway_door_prob,optional"`
}

// Keys lists the settable keys in declaration order.
var Keys = []string{
	"seed", "map_width", "map_height", "max_leaves_count", "min_size",
	"max_size", "quit_rate", "single_door_prob", "double_door_prob", "hallway_door_prob",
}

// Set parses value into the field named by key.
func (o *Overrides) Set(key, value string) error {
	if key == "seed" {
		o.Seed = &value
		return nil
	}
	if key == "quit_rate" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.QuitRate = &f
		return nil
	}

	var dst **int
	switch key {
	case "map_width":
		dst = &o.MapWidth
	case "map_height":
		dst = &o.MapHeight
	case "max_leaves_count":
		dst = &o.MaxLeavesCount
	case "min_size":
		dst = &o.MinSize
	case "max_size":
		dst = &o.MaxSize
	case "single_door_prob":
		dst = &o.SingleDoorProb
	case "double_door_prob":
		dst = &o.DoubleDoorProb
	case "hallway_door_prob":
		dst = &o.HallwayDoorProb
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = &n
	return nil
}

// Apply copies every set field onto cfg.
func (o Overrides) Apply(cfg *world.Config) {
	if o.Seed != nil {
		cfg.Seed = rng.SeedFromString(*o.Seed)
	}
	setInt(&cfg.MapWidth, o.MapWidth)
	setInt(&cfg.MapHeight, o.MapHeight)
	setInt(&cfg.MaxLeavesCount, o.MaxLeavesCount)
	setInt(&cfg.MinSize, o.MinSize)
	setInt(&cfg.MaxSize, o.MaxSize)
	if o.QuitRate != nil {
		cfg.QuitRate = *o.QuitRate
	}
	setInt(&cfg.SingleDoorProb, o.SingleDoorProb)
	setInt(&cfg.DoubleDoorProb, o.DoubleDoorProb)
	setInt(&cfg.HallwayDoorProb, o.HallwayDoorProb)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
