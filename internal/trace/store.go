package trace

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const maxSessions = 100

// Store persists trace data to PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects to a PostgreSQL trace database at connStr.
func Open(connStr string) (*Store, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("trace open: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace ping: %w", err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return err
	}

	var current int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), -1) FROM schema_version`)
	if err = row.Scan(&current); err != nil {
		return err
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	for i := current + 1; i < len(entries); i++ {
		data, readErr := migrationFS.ReadFile("migrations/" + entries[i].Name())
		if readErr != nil {
			return fmt.Errorf("read migration %d: %w", i, readErr)
		}
		if _, execErr := db.Exec(string(data)); execErr != nil {
			return fmt.Errorf("migration %d: %w", i, execErr)
		}
		if _, execErr := db.Exec(`INSERT INTO schema_version (version) VALUES ($1)`, i); execErr != nil {
			return fmt.Errorf("migration %d record: %w", i, execErr)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new CLI session and prunes old ones.
func (s *Store) CreateSession(id, voiceName string) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, voice_name, started_at) VALUES ($1, $2, $3)`,
		id, voiceName, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`DELETE FROM sessions WHERE id NOT IN (SELECT id FROM sessions ORDER BY started_at DESC LIMIT $1)`,
		maxSessions,
	)
	return err
}

// EndSession sets the ended_at timestamp.
func (s *Store) EndSession(id string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET ended_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	return err
}

// CreateUtterance inserts a new utterance (one `speak` call).
func (s *Store) CreateUtterance(id, sessionID, text, voiceName string) error {
	_, err := s.db.Exec(
		`INSERT INTO utterances (id, session_id, started_at, text, voice_name, status) VALUES ($1, $2, $3, $4, $5, 'running')`,
		id, sessionID, time.Now().UTC(), text, voiceName,
	)
	return err
}

// UpdateUtterance sets the utterance's final fields.
func (s *Store) UpdateUtterance(id string, durationMs float64, status string) error {
	_, err := s.db.Exec(
		`UPDATE utterances SET duration_ms = $1, status = $2 WHERE id = $3`,
		durationMs, status, id,
	)
	return err
}

// CreateStage inserts one acoustic-pipeline stage execution.
func (s *Store) CreateStage(st Stage) error {
	_, err := s.db.Exec(
		`INSERT INTO stages (id, utterance_id, name, started_at, duration_ms, input, output, status, error_msg)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		st.ID, st.UtteranceID, st.Name, st.StartedAt.UTC(),
		st.DurationMs, st.Input, st.Output, st.Status, st.Error,
	)
	return err
}

// ListSessions returns sessions ordered newest first, with utterance counts.
func (s *Store) ListSessions(limit, offset int) ([]Session, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(`
		SELECT s.id, s.voice_name, s.started_at, s.ended_at, COUNT(u.id) as utterance_count
		FROM sessions s
		LEFT JOIN utterances u ON u.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var endedAt sql.NullTime
		if err = rows.Scan(&sess.ID, &sess.VoiceName, &sess.StartedAt, &endedAt, &sess.UtteranceCount); err != nil {
			return nil, 0, err
		}
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}
	return sessions, total, rows.Err()
}

// GetSession returns a single session with its utterances.
func (s *Store) GetSession(id string) (*Session, []Utterance, error) {
	var sess Session
	var endedAt sql.NullTime
	err := s.db.QueryRow(
		`SELECT id, voice_name, started_at, ended_at FROM sessions WHERE id = $1`, id,
	).Scan(&sess.ID, &sess.VoiceName, &sess.StartedAt, &endedAt)
	if err != nil {
		return nil, nil, err
	}
	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}

	rows, err := s.db.Query(`
		SELECT u.id, u.session_id, u.started_at, u.duration_ms, u.text, u.voice_name, u.status,
		       COUNT(st.id) as stage_count
		FROM utterances u
		LEFT JOIN stages st ON st.utterance_id = u.id
		WHERE u.session_id = $1
		GROUP BY u.id
		ORDER BY u.started_at ASC
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var utterances []Utterance
	for rows.Next() {
		var u Utterance
		if err = rows.Scan(&u.ID, &u.SessionID, &u.StartedAt, &u.DurationMs, &u.Text, &u.VoiceName, &u.Status, &u.StageCount); err != nil {
			return nil, nil, err
		}
		utterances = append(utterances, u)
	}
	return &sess, utterances, rows.Err()
}

// GetUtterance returns a single utterance with its stages.
func (s *Store) GetUtterance(sessionID, utteranceID string) (*Utterance, []Stage, error) {
	var u Utterance
	err := s.db.QueryRow(
		`SELECT id, session_id, started_at, duration_ms, text, voice_name, status FROM utterances WHERE id = $1 AND session_id = $2`,
		utteranceID, sessionID,
	).Scan(&u.ID, &u.SessionID, &u.StartedAt, &u.DurationMs, &u.Text, &u.VoiceName, &u.Status)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, utterance_id, name, started_at, duration_ms, input, output, status, error_msg FROM stages WHERE utterance_id = $1 ORDER BY started_at ASC`,
		utteranceID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var stages []Stage
	for rows.Next() {
		var st Stage
		if err = rows.Scan(&st.ID, &st.UtteranceID, &st.Name, &st.StartedAt, &st.DurationMs, &st.Input, &st.Output, &st.Status, &st.Error); err != nil {
			return nil, nil, err
		}
		stages = append(stages, st)
	}
	return &u, stages, rows.Err()
}
