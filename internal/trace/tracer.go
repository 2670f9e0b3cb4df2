package trace

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// maxTraceFieldLen caps the length of text/input/output strings
	// stored in trace stages to avoid bloating the Postgres rows.
	maxTraceFieldLen = 500

	// traceChannelBuffer is how many trace messages can queue before the
	// background drain goroutine writes them to the store.
	traceChannelBuffer = 64
)

type traceMsg struct {
	kind string // "utterance_create", "utterance_update", "stage"
	// utterance fields
	utteranceID string
	sessionID   string
	durationMs  float64
	text        string
	voiceName   string
	status      string
	// stage fields
	stage Stage
}

// Tracer writes trace data asynchronously via a buffered channel. All
// methods are nil-safe (no-op on nil receiver), so tracing can be
// disabled entirely by passing a nil *Tracer through the call chain.
type Tracer struct {
	store     *Store
	sessionID string
	ch        chan traceMsg
	done      chan struct{}
}

// NewTracer creates a tracer bound to a session. Launches a background
// goroutine (drain) that writes trace messages to the store
// sequentially. Callers MUST call Close() when done to flush pending
// writes and stop the goroutine.
func NewTracer(store *Store, sessionID string) *Tracer {
	t := &Tracer{
		store:     store,
		sessionID: sessionID,
		ch:        make(chan traceMsg, traceChannelBuffer),
		done:      make(chan struct{}),
	}
	go t.drain()
	return t
}

func (t *Tracer) drain() {
	defer close(t.done)
	for msg := range t.ch {
		t.handle(msg)
	}
}

func (t *Tracer) handle(m traceMsg) {
	if err := t.dispatch(m); err != nil {
		slog.Warn("trace write failed", "kind", m.kind, "error", err)
	}
}

func (t *Tracer) dispatch(m traceMsg) error {
	switch m.kind {
	case "utterance_create":
		return t.store.CreateUtterance(m.utteranceID, m.sessionID, m.text, m.voiceName)
	case "utterance_update":
		return t.store.UpdateUtterance(m.utteranceID, m.durationMs, m.status)
	case "stage":
		return t.store.CreateStage(m.stage)
	}
	return nil
}

// StartUtterance begins a new utterance and returns its ID.
func (t *Tracer) StartUtterance(text, voiceName string) string {
	if t == nil {
		return ""
	}
	id := uuid.NewString()
	t.ch <- traceMsg{
		kind:        "utterance_create",
		utteranceID: id,
		sessionID:   t.sessionID,
		text:        truncate(text, maxTraceFieldLen),
		voiceName:   voiceName,
	}
	return id
}

// EndUtterance finalizes an utterance.
func (t *Tracer) EndUtterance(utteranceID string, durationMs float64, status string) {
	if t == nil {
		return
	}
	t.ch <- traceMsg{
		kind:        "utterance_update",
		utteranceID: utteranceID,
		durationMs:  durationMs,
		status:      status,
	}
}

// RecordStage records one of the four acoustic-pipeline stages: g2p,
// parse, prosody, synth.
func (t *Tracer) RecordStage(utteranceID, name string, startedAt time.Time, durationMs float64, input, output, status, errMsg string) {
	if t == nil {
		return
	}
	t.ch <- traceMsg{
		kind: "stage",
		stage: Stage{
			ID:          uuid.NewString(),
			UtteranceID: utteranceID,
			Name:        name,
			StartedAt:   startedAt,
			DurationMs:  durationMs,
			Input:       truncate(input, maxTraceFieldLen),
			Output:      truncate(output, maxTraceFieldLen),
			Status:      status,
			Error:       errMsg,
		},
	}
}

// Close drains pending writes and shuts down the background goroutine.
func (t *Tracer) Close() {
	if t == nil {
		return
	}
	close(t.ch)
	<-t.done
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
