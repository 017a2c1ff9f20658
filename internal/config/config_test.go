package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/bspmaze/internal/rng"
	"github.com/samdwyer/bspmaze/internal/world"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(context.Background(), Sources{})
	require.NoError(t, err)
	assert.Equal(t, world.DefaultConfig(), cfg)
}

func TestResolveLayerOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maze.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
map_width = 60
max_size  = defaults.max_size * 2
seed      = "from-file"
`), 0o644))

	width := 70
	cfg, err := Resolve(context.Background(), Sources{
		Preset: "tiny",
		File:   path,
		LookupEnv: envMap(map[string]string{
			"BSPMAZE_SEED":       "7",
			"BSPMAZE_MAP_HEIGHT": "33",
		}),
		Flags: Overrides{MapWidth: &width},
	})
	require.NoError(t, err)

	assert.Equal(t, 70, cfg.MapWidth, "flag beats file")
	assert.Equal(t, 33, cfg.MapHeight, "env beats preset")
	assert.Equal(t, 40, cfg.MaxSize, "file expression over defaults")
	assert.Equal(t, 4, cfg.MinSize, "preset value kept")
	assert.Equal(t, int64(7), cfg.Seed, "env beats file")
}

func TestResolveHashesStringSeed(t *testing.T) {
	seed := "crypt"
	cfg, err := Resolve(context.Background(), Sources{Flags: Overrides{Seed: &seed}})
	require.NoError(t, err)
	assert.Equal(t, rng.SeedFromString("crypt"), cfg.Seed)
}

func TestResolveRejectsZeroDoorWeights(t *testing.T) {
	_, err := Resolve(context.Background(), Sources{LookupEnv: envMap(map[string]string{
		"BSPMAZE_SINGLE_DOOR_PROB":  "0",
		"BSPMAZE_DOUBLE_DOOR_PROB":  "0",
		"BSPMAZE_HALLWAY_DOOR_PROB": "0",
	})})

	var cfgErr *world.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(context.Background(), Sources{Preset: "nope"})
	assert.ErrorContains(t, err, "unknown preset")
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"BSPMAZE_MIN_SIZE": "six"}))
	assert.ErrorContains(t, err, "BSPMAZE_MIN_SIZE")
}

func TestParseHCLRejectsUnknownAttribute(t *testing.T) {
	_, err := ParseHCL("bad.hcl", []byte(`colour = "red"`))
	assert.Error(t, err)
}

func TestOverridesSet(t *testing.T) {
	var o Overrides
	require.NoError(t, o.Set("quit_rate", "0.25"))
	require.NoError(t, o.Set("max_leaves_count", "12"))
	assert.Error(t, o.Set("width", "3"))

	cfg := world.DefaultConfig()
	o.Apply(&cfg)
	assert.Equal(t, 0.25, cfg.QuitRate)
	assert.Equal(t, 12, cfg.MaxLeavesCount)
}

func TestPresetsAllValid(t *testing.T) {
	names, err := PresetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"caverns", "default", "halls", "tiny"}, names)

	for _, name := range names {
		cfg, err := Resolve(context.Background(), Sources{Preset: name})
		require.NoError(t, err, name)
		_, err = world.Generate(context.Background(), cfg)
		require.NoError(t, err, name)
	}
}

func TestExampleConfigFile(t *testing.T) {
	o, err := LoadHCLFile(filepath.Join("..", "..", "maze.example.hcl"))
	require.NoError(t, err)

	cfg := world.DefaultConfig()
	o.Apply(&cfg)
	assert.Equal(t, rng.SeedFromString("catacombs"), cfg.Seed)
	assert.Equal(t, 60, cfg.MapWidth)
	assert.Equal(t, 25, cfg.MaxSize)
	assert.Equal(t, 2, cfg.HallwayDoorProb)
	require.NoError(t, cfg.Validate())
}
