package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, CommandPrint, opts.Command)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Nil(t, opts.Flags.Seed)
}

func TestParseCommandAndOverrides(t *testing.T) {
	opts, _, err := Parse([]string{"serve", "-seed", "abc", "-map-width", "64", "-quit-rate", "0.5", "-addr", ":9000"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, CommandServe, opts.Command)
	assert.Equal(t, ":9000", opts.Addr)
	require.NotNil(t, opts.Flags.Seed)
	assert.Equal(t, "abc", *opts.Flags.Seed)
	require.NotNil(t, opts.Flags.MapWidth)
	assert.Equal(t, 64, *opts.Flags.MapWidth)
	require.NotNil(t, opts.Flags.QuitRate)
	assert.Equal(t, 0.5, *opts.Flags.QuitRate)
	assert.Nil(t, opts.Flags.MapHeight)
}

func TestParseHelp(t *testing.T) {
	out := &bytes.Buffer{}
	opts, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, opts)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{"dance"},
		{"-min-size", "six"},
		{"-log-format", "xml"},
		{"-log-level", "loud"},
		{"print", "extra"},
	}
	for _, args := range cases {
		_, _, err := Parse(args, &bytes.Buffer{})
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "args %v", args)
		assert.Equal(t, 2, exitErr.Code)
	}
}
