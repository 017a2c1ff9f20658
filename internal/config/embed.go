// Package config resolves generation parameters from layered sources:
// built-in defaults, an embedded named preset, an optional HCL file,
// BSPMAZE_* environment variables, and command-line flags, in that order.
package config

import "embed"

// dataFS embeds the preset definitions at build time.
//
//go:embed *.json
var dataFS embed.FS
