package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hubenschmidt/klatt-tts/internal/g2p"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

func testVoices() map[string]voice.Profile {
	v := voice.Default()
	return map[string]voice.Profile{v.Name: v}
}

func TestServeHTTPStreamsPCMFramesThenEndMarker(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Predictor:    g2p.New(nil),
		Voices:       testVoices(),
		DefaultVoice: "default",
	})

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"text": "hi"}); err != nil {
		t.Fatalf("write request failed: %v", err)
	}

	var binaryFrames int
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed after %d binary frames: %v", binaryFrames, err)
		}
		if kind == websocket.BinaryMessage {
			binaryFrames++
			if len(data)%4 != 0 {
				t.Fatalf("binary frame length %d is not a multiple of 4 (float32 samples)", len(data))
			}
			continue
		}
		// TextMessage: the end-of-utterance marker.
		var marker map[string]string
		if jsonErr := json.Unmarshal(data, &marker); jsonErr != nil {
			t.Fatalf("end marker is not valid JSON: %v", jsonErr)
		}
		if marker["event"] != "utterance_end" {
			t.Fatalf("got marker %v, want utterance_end", marker)
		}
		break
	}

	if binaryFrames == 0 {
		t.Fatal("expected at least one binary PCM frame before the end marker")
	}
}
