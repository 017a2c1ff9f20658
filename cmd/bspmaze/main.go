// Package main is the entry point for bspmaze.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/bspmaze/internal/browser"
	"github.com/samdwyer/bspmaze/internal/cli"
	"github.com/samdwyer/bspmaze/internal/config"
	"github.com/samdwyer/bspmaze/internal/ctxlog"
	"github.com/samdwyer/bspmaze/internal/server"
	"github.com/samdwyer/bspmaze/internal/telemetry"
	"github.com/samdwyer/bspmaze/internal/ui"
	"github.com/samdwyer/bspmaze/internal/world"
)

func main() {
	// Load .env file for local development; BSPMAZE_* and OTEL_* may live there
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, resolves the config and dispatches the command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := ctxlog.New(opts.LogLevel, opts.LogFormat, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Not fatal - generation works without tracing
			logger.Warn("Telemetry setup failed", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("Error shutting down telemetry", "error", err)
				}
			}()
		}
	}

	cfg, err := config.Resolve(ctx, config.Sources{
		Preset:    opts.Preset,
		File:      opts.File,
		LookupEnv: os.LookupEnv,
		Flags:     opts.Flags,
	})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	switch opts.Command {
	case cli.CommandView:
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		return browser.New(screen, cfg).Run(ctx)
	case cli.CommandServe:
		return server.New(cfg, logger).ListenAndServe(ctx, opts.Addr)
	default:
		return printMap(ctx, cfg, opts.Stats, stdout, stderr)
	}
}

// printMap generates one map and writes it as text rows.
func printMap(ctx context.Context, cfg world.Config, stats bool, stdout, stderr io.Writer) error {
	d, err := world.NewDungeon(cfg)
	if err != nil {
		return err
	}
	if err := d.Generate(ctx); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, d.Grid.String()); err != nil {
		return err
	}
	if stats {
		fmt.Fprintf(stderr, "seed=%d leaves=%d rooms=%d doors=%d\n",
			cfg.Seed, len(d.Tree.Leaves), len(d.Tree.Rooms), len(d.Tree.Doors()))
	}
	ctxlog.FromContext(ctx).Debug("Map printed", "seed", cfg.Seed)
	return nil
}
