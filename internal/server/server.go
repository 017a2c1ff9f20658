// Package server exposes map generation over HTTP and websocket.
//
// Every request generates with its own random stream, so requests never
// share state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/bspmaze/internal/config"
	"github.com/samdwyer/bspmaze/internal/ctxlog"
	"github.com/samdwyer/bspmaze/internal/telemetry"
	"github.com/samdwyer/bspmaze/internal/world"
)

// DefaultMaxCells bounds MapWidth*MapHeight per request.
const DefaultMaxCells = 1 << 20

const readHeaderTimeout = 10 * time.Second

// ErrTooLarge is returned for maps over the cell limit.
var ErrTooLarge = errors.New("map too large")

// Server serves generated maps.
type Server struct {
	base     world.Config
	logger   *slog.Logger
	maxCells int
}

// New creates a server. Requests start from base, then apply the named
// preset, then any per-key params.
func New(base world.Config, logger *slog.Logger) *Server {
	return &Server{base: base, logger: logger, maxCells: DefaultMaxCells}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /map", s.handleMap)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := s.httpServer(addr)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Map server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Map server shutting down")
		return srv.Shutdown(context.Background())
	}
}

func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := make(map[string]string)
	for _, key := range config.Keys {
		if v := q.Get(key); v != "" {
			params[key] = v
		}
	}

	ctx := ctxlog.WithLogger(r.Context(), s.logger)
	doc, err := s.generate(ctx, q.Get("preset"), params)
	if err != nil {
		writeJSON(w, statusFor(err), errorDocument{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// generate resolves a request config and builds one map.
func (s *Server) generate(ctx context.Context, preset string, params map[string]string) (MapDocument, error) {
	ctx, span := telemetry.Tracer("server").Start(ctx, "server.generate")
	defer span.End()

	cfg, err := s.requestConfig(preset, params)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return MapDocument{}, err
	}
	span.SetAttributes(attribute.Int64("maze.seed", cfg.Seed))

	d, err := world.NewDungeon(cfg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return MapDocument{}, err
	}
	if err := d.Generate(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return MapDocument{}, err
	}
	return newMapDocument(d), nil
}

// requestConfig layers the preset and params over the server's base config.
func (s *Server) requestConfig(preset string, params map[string]string) (world.Config, error) {
	cfg := s.base
	if preset != "" {
		p, err := config.Preset(preset)
		if err != nil {
			return cfg, &requestError{err}
		}
		p.Apply(&cfg)
	}

	var o config.Overrides
	for key, value := range params {
		if err := o.Set(key, value); err != nil {
			return cfg, &requestError{err}
		}
	}
	o.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !withinCells(cfg.MapWidth, cfg.MapHeight, s.maxCells) {
		return cfg, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, cfg.MapWidth, cfg.MapHeight, s.maxCells)
	}
	return cfg, nil
}

// withinCells reports whether w*h <= limit for positive w and h without
// computing the product.
func withinCells(w, h, limit int) bool {
	return w <= limit && h <= limit/w
}

// requestError marks a malformed request parameter.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

type errorDocument struct {
	Error string `json:"error" msgpack:"error"`
}

func statusFor(err error) int {
	var reqErr *requestError
	var cfgErr *world.ConfigError
	switch {
	case errors.As(err, &reqErr), errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
