package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/samdwyer/bspmaze/internal/ctxlog"
)

// Encodings accepted in a websocket Request.
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// Request is a websocket generation request.
type Request struct {
	Preset string `json:"preset"`
	// Encoding selects the reply format; msgpack replies are binary frames.
	Encoding string `json:"encoding"`
	// Params overrides config keys, e.g. {"seed": "abc", "map_width": "60"}.
	Params map[string]string `json:"params"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("Websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := ctxlog.With(ctxlog.WithLogger(r.Context(), s.logger), "session", uuid.NewString())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Websocket session opened", "remote_addr", r.RemoteAddr)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				logger.Debug("Websocket read ended", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			if err := s.reply(ctx, conn, EncodingJSON, errorDocument{Error: "malformed request: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		var reply any
		doc, err := s.generate(ctx, req.Preset, req.Params)
		if err != nil {
			reply = errorDocument{Error: err.Error()}
		} else {
			reply = doc
		}
		logger.Debug("Websocket map served", "seed", doc.Seed, "error", err)

		if err := s.reply(ctx, conn, req.Encoding, reply); err != nil {
			logger.Debug("Websocket write failed", "error", err)
			return
		}
	}
}

// reply writes v in the requested encoding.
func (s *Server) reply(ctx context.Context, conn *websocket.Conn, encoding string, v any) error {
	if encoding == EncodingMsgpack {
		data, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}
		return conn.Write(ctx, websocket.MessageBinary, data)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
