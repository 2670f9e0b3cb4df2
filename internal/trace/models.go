package trace

import "time"

// Session represents one interactive CLI session (spec.md §6's
// interactive prompt loop), spanning however many utterances the user
// speaks before exiting.
type Session struct {
	ID            string     `json:"id"`
	VoiceName     string     `json:"voice_name"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	UtteranceCount int       `json:"utterance_count,omitempty"`
}

// Utterance represents one `speak` call: text in, PCM out, carried
// through the four acoustic stages (g2p, parse, prosody, synth).
type Utterance struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs float64   `json:"duration_ms,omitempty"`
	Text       string    `json:"text,omitempty"`
	VoiceName  string    `json:"voice_name,omitempty"`
	Status     string    `json:"status"`
	StageCount int       `json:"stage_count,omitempty"`
}

// Stage represents one acoustic-pipeline stage execution within an
// utterance: g2p, parse, prosody, or synth.
type Stage struct {
	ID         string    `json:"id"`
	UtteranceID string   `json:"utterance_id"`
	Name       string    `json:"name"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs float64   `json:"duration_ms"`
	Input      string    `json:"input,omitempty"`
	Output     string    `json:"output,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}
