package config

import (
	"fmt"
	"sort"
)

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

// Presets returns the embedded named presets.
func Presets() (map[string]Overrides, error) {
	return Load[map[string]Overrides]("presets.json")
}

// PresetNames returns the embedded preset names, sorted.
func PresetNames() ([]string, error) {
	presets, err := Presets()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Preset returns the named preset.
func Preset(name string) (Overrides, error) {
	presets, err := Presets()
	if err != nil {
		return Overrides{}, err
	}
	p, ok := presets[name]
	if !ok {
		return Overrides{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}
