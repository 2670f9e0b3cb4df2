// Package ws adapts the render driver to a streaming WebSocket
// client: a text frame carrying the utterance, a sequence of binary
// PCM frames in response, grounded on the teacher's call-audio upgrade
// loop (spec.md §4.M expansion).
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hubenschmidt/klatt-tts/internal/g2p"
	"github.com/hubenschmidt/klatt-tts/internal/prosody"
	"github.com/hubenschmidt/klatt-tts/internal/render"
	"github.com/hubenschmidt/klatt-tts/internal/synth"
	"github.com/hubenschmidt/klatt-tts/internal/text"
	"github.com/hubenschmidt/klatt-tts/internal/trace"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  16384,
	WriteBufferSize: 16384,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandlerConfig holds the shared, process-wide resources for every
// streaming speak session.
type HandlerConfig struct {
	Predictor    *g2p.Predictor
	Voices       map[string]voice.Profile
	DefaultVoice string
	TraceStore   *trace.Store
}

// Handler upgrades connections and runs one speak-request/PCM-response
// session per connection.
type Handler struct {
	cfg HandlerConfig
}

// NewHandler creates a WS handler bound to the shared pipeline resources.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

// speakRequest is the single text frame a client sends per utterance.
type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// ServeHTTP upgrades the connection and streams one or more utterances
// as the client sends text frames, until the connection closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.runSession(conn)
}

func (h *Handler) runSession(conn *websocket.Conn) {
	ctx := context.Background()
	parser := text.New(h.cfg.Predictor)

	for {
		var req speakRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		v, ok := h.cfg.Voices[req.Voice]
		if !ok {
			v, ok = h.cfg.Voices[h.cfg.DefaultVoice]
		}
		if !ok {
			v = voice.Default()
		}

		if err := h.speak(ctx, conn, parser, req.Text, v); err != nil {
			slog.Warn("speak over websocket failed", "error", err)
			return
		}
	}
}

func (h *Handler) speak(ctx context.Context, conn *websocket.Conn, parser *text.Parser, utterance string, v voice.Profile) error {
	events, err := parser.Parse(ctx, utterance)
	if err != nil {
		return encodeAndSendError(conn, err)
	}

	gen := prosody.NewGenerator(v)
	syn := synth.New(v)
	sink := render.NewWSSink(conn)
	driver := render.New(gen, syn, sink)

	return driver.Speak(ctx, events)
}

func encodeAndSendError(conn *websocket.Conn, cause error) error {
	payload, _ := json.Marshal(map[string]string{"error": cause.Error()})
	return conn.WriteMessage(websocket.TextMessage, payload)
}
