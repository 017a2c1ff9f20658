// Package cli parses command-line arguments, validates user input, and
// translates flags into the application's options.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/bspmaze/internal/config"
)

// Commands understood by the binary.
const (
	CommandPrint = "print"
	CommandView  = "view"
	CommandServe = "serve"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line.
type Options struct {
	Command   string
	Preset    string
	File      string
	Flags     config.Overrides
	LogLevel  string
	LogFormat string
	Addr      string
	Stats     bool
}

// Parse processes command-line arguments. It returns the parsed Options, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	opts := &Options{Command: CommandPrint}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.Command = args[0]
		args = args[1:]
	}
	switch opts.Command {
	case CommandPrint, CommandView, CommandServe:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", opts.Command)}
	}

	flagSet := flag.NewFlagSet("bspmaze", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
bspmaze - seeded BSP room-and-door map generator.

Usage:
  bspmaze [print|view|serve] [options]

Commands:
  print   Write the map to stdout (default).
  view    Browse seeds in the terminal.
  serve   Serve maps over HTTP and websocket.

Options:
`)
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&opts.Preset, "preset", "", "Named preset: default, tiny, halls, caverns.")
	flagSet.StringVar(&opts.File, "config", "", "Path to an HCL config file.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&opts.Addr, "addr", ":8080", "Listen address for serve.")
	flagSet.BoolVar(&opts.Stats, "stats", false, "Print room and door counts to stderr after print.")

	values := make(map[string]*string, len(config.Keys))
	for _, key := range config.Keys {
		values[key] = flagSet.String(flagName(key), "", "Override "+key+".")
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	var setErr error
	flagSet.Visit(func(f *flag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := values[key]; !ok || setErr != nil {
			return
		}
		setErr = opts.Flags.Set(key, *values[key])
	})
	if setErr != nil {
		return nil, false, &ExitError{Code: 2, Message: setErr.Error()}
	}

	opts.LogFormat = strings.ToLower(opts.LogFormat)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	opts.LogLevel = strings.ToLower(opts.LogLevel)
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return opts, false, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
