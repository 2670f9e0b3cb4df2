package render

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gorilla/websocket"
)

// WSSink streams PCM batches as little-endian float32 binary frames
// over an existing WebSocket connection, the streaming counterpart to
// WAVSink for spec.md §6's abstract audio sink (§4.M expansion),
// grounded on the teacher's internal/ws/handler.go call-audio push
// loop (conn.WriteMessage(websocket.BinaryMessage, ...)).
type WSSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSSink wraps an already-upgraded connection. The caller owns the
// connection's lifecycle beyond Close, mirroring the handler's own
// defer conn.Close() pattern.
func NewWSSink(conn *websocket.Conn) *WSSink {
	return &WSSink{conn: conn}
}

// WriteBlock sends one batch of PCM as a binary frame of little-endian
// float32 samples.
func (s *WSSink) WriteBlock(samples []float32) error {
	buf := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, buf)
}

// Close sends a small text marker frame signaling end-of-utterance. It
// deliberately does not send a WebSocket close frame or close the
// underlying connection: one WS connection is expected to carry many
// utterances over an interactive session's lifetime, so "closes on
// speak completion" (spec.md §6) means the PCM stream for this
// utterance, not the transport.
func (s *WSSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"utterance_end"}`))
}
