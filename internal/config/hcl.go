package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/samdwyer/bspmaze/internal/world"
)

// ParseHCL decodes a maze config file. All attributes are optional and
// unknown attributes are an error. Expressions may refer to defaults.<key>,
// the built-in value of any key.
func ParseHCL(filename string, src []byte) (Overrides, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Overrides{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed Overrides
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return Overrides{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return parsed, nil
}

// LoadHCLFile reads and decodes a maze config file from disk.
func LoadHCLFile(path string) (Overrides, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseHCL(path, src)
}

// evalContext exposes the built-in defaults to config expressions.
func evalContext() *hcl.EvalContext {
	d := world.DefaultConfig()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"seed":              cty.NumberIntVal(d.Seed),
				"map_width":         cty.NumberIntVal(int64(d.MapWidth)),
				"map_height":        cty.NumberIntVal(int64(d.MapHeight)),
				"max_leaves_count":  cty.NumberIntVal(int64(d.MaxLeavesCount)),
				"min_size":          cty.NumberIntVal(int64(d.MinSize)),
				"max_size":          cty.NumberIntVal(int64(d.MaxSize)),
				"quit_rate":         cty.NumberFloatVal(d.QuitRate),
				"single_door_prob":  cty.NumberIntVal(int64(d.SingleDoorProb)),
				"double_door_prob":  cty.NumberIntVal(int64(d.DoubleDoorProb)),
				"hallway_door_prob": cty.NumberIntVal(int64(d.HallwayDoorProb)),
			}),
		},
	}
}
