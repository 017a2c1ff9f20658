package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/samdwyer/bspmaze/internal/ctxlog"
	"github.com/samdwyer/bspmaze/internal/world"
)

// EnvPrefix prefixes every environment variable read by Resolve.
const EnvPrefix = "BSPMAZE_"

// Sources names the layers Resolve combines. Empty fields are skipped.
type Sources struct {
	// Preset is an embedded preset name; empty means DefaultPreset.
	Preset string
	// File is a path to an HCL config file.
	File string
	// LookupEnv reads environment variables, normally os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Flags holds values given on the command line.
	Flags Overrides
}

// Resolve builds a validated configuration from defaults and sources.
func Resolve(ctx context.Context, src Sources) (world.Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := world.DefaultConfig()

	name := src.Preset
	if name == "" {
		name = DefaultPreset
	}
	preset, err := Preset(name)
	if err != nil {
		return cfg, err
	}
	preset.Apply(&cfg)
	logger.Debug("Applied preset", "preset", name)

	if src.File != "" {
		file, err := LoadHCLFile(src.File)
		if err != nil {
			return cfg, err
		}
		file.Apply(&cfg)
		logger.Debug("Applied config file", "path", src.File)
	}

	if src.LookupEnv != nil {
		env, err := FromEnv(src.LookupEnv)
		if err != nil {
			return cfg, err
		}
		env.Apply(&cfg)
	}

	src.Flags.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("resolve config: %w", err)
	}
	logger.Debug("Config resolved", "config", cfg)
	return cfg, nil
}

// FromEnv collects BSPMAZE_<KEY> variables, e.g. BSPMAZE_MAP_WIDTH.
func FromEnv(lookup func(string) (string, bool)) (Overrides, error) {
	var o Overrides
	for _, key := range Keys {
		name := EnvPrefix + strings.ToUpper(key)
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := o.Set(key, value); err != nil {
			return o, fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return o, nil
}
