package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/samdwyer/bspmaze/internal/world"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(world.DefaultConfig(), logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getMap(t *testing.T, url string) (int, MapDocument, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc MapDocument
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &doc))
	}
	return resp.StatusCode, doc, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMapMatchesDirectGeneration(t *testing.T) {
	ts := newTestServer(t)

	status, doc, _ := getMap(t, ts.URL+"/map?seed=101")
	require.Equal(t, http.StatusOK, status)

	grid, err := world.Generate(context.Background(), world.DefaultConfig())
	require.NoError(t, err)
	if diff := cmp.Diff(grid.Rows(), doc.Rows); diff != "" {
		t.Errorf("rows differ (-direct +served):\n%s", diff)
	}
	assert.Equal(t, int64(101), doc.Seed)
	assert.NotEmpty(t, doc.Rooms)
	assert.NotEmpty(t, doc.Doors)
}

func TestMapParamsAndPreset(t *testing.T) {
	ts := newTestServer(t)

	status, doc, _ := getMap(t, ts.URL+"/map?preset=tiny&map_width=25&seed=goblin")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 25, doc.Width)
	assert.Equal(t, 20, doc.Height)
	assert.Len(t, doc.Rows, 20)
}

func TestMapErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query  string
		status int
	}{
		{"preset=nope", http.StatusBadRequest},
		{"min_size=abc", http.StatusBadRequest},
		{"single_door_prob=0&double_door_prob=0&hallway_door_prob=0", http.StatusBadRequest},
		{"map_width=5000&map_height=5000", http.StatusRequestEntityTooLarge},
		{"map_width=8589934592&map_height=2147483648", http.StatusRequestEntityTooLarge},
		{"map_width=4294967296&map_height=4294967296", http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, _, body := getMap(t, ts.URL+"/map?"+tt.query)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, body, `"error"`)
		})
	}
}

func TestWebsocketJSONAndMsgpack(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	req, err := json.Marshal(Request{Params: map[string]string{"seed": "7"}})
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, req))

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	var asJSON MapDocument
	require.NoError(t, json.Unmarshal(data, &asJSON))
	assert.Equal(t, int64(7), asJSON.Seed)

	req, err = json.Marshal(Request{Encoding: EncodingMsgpack, Params: map[string]string{"seed": "7"}})
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, req))

	typ, data, err = conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageBinary, typ)
	var asMsgpack MapDocument
	require.NoError(t, msgpack.Unmarshal(data, &asMsgpack))

	assert.Equal(t, asJSON.Rows, asMsgpack.Rows)
	assert.Equal(t, len(asJSON.Doors), len(asMsgpack.Doors))
}

func TestWebsocketMalformedRequest(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), "malformed request")
}

func TestRequestConfigCellLimit(t *testing.T) {
	s := New(world.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		width, height string
		ok            bool
	}{
		{"1024", "1024", true},
		{"1", "1048576", true},
		{"1025", "1024", false},
		{"1048577", "1", false},
		{"8589934592", "2147483648", false},
		{"4294967296", "4294967296", false},
	}
	for _, tt := range tests {
		t.Run(tt.width+"x"+tt.height, func(t *testing.T) {
			_, err := s.requestConfig("", map[string]string{"map_width": tt.width, "map_height": tt.height})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTooLarge)
			}
		})
	}
}

func TestPresetLayersOverBase(t *testing.T) {
	base := world.DefaultConfig()
	base.Seed = 4242
	base.QuitRate = 0.3
	s := New(base, slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg, err := s.requestConfig("tiny", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4242), cfg.Seed)
	assert.Equal(t, 0.3, cfg.QuitRate)
	assert.Equal(t, 20, cfg.MapWidth)
	assert.Equal(t, 4, cfg.MinSize)

	cfg, err = s.requestConfig("tiny", map[string]string{"seed": "7"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestHTTPServerSetsReadHeaderTimeout(t *testing.T) {
	s := New(world.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := s.httpServer(":0")
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
}
