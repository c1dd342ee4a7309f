// Package journal records the pointer and resize notifications fed to split
// controllers in a SQLite database, so a gesture can be replayed headless
// when a layout misbehaves. It never restores ratios into a live session.
package journal

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/splitpane/internal/split"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id       TEXT PRIMARY KEY,
	label    TEXT NOT NULL,
	started  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	session  TEXT NOT NULL,
	scope    TEXT NOT NULL,
	element  TEXT NOT NULL,
	kind     TEXT NOT NULL,
	x        INTEGER NOT NULL,
	y        INTEGER NOT NULL,
	at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_session ON events(session, id);
CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started);
`

// Entry is one recorded notification. For resize entries X and Y hold the
// viewport width and height.
type Entry struct {
	Scope split.Scope
	Kind  split.EventKind
	X, Y  int
	At    time.Time
}

// Session summarizes one recorded run.
type Session struct {
	ID      string
	Label   string
	Started time.Time
	Events  int
}

type saveReq struct {
	session string
	entry   Entry
	flush   chan struct{}
}

// Journal is a SQLite-backed event log.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	saveCh chan saveReq
	done   chan struct{}
}

// Open creates or opens a journal at path. Sessions older than retention are
// purged; zero keeps everything.
func Open(path string, retention time.Duration) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	j := &Journal{
		db:     db,
		saveCh: make(chan saveReq, 1024),
		done:   make(chan struct{}),
	}
	if retention > 0 {
		j.purgeBefore(time.Now().Add(-retention))
	}
	go j.saveLoop()
	return j, nil
}

// Close drains pending writes and closes the database.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	close(j.saveCh)
	<-j.done
	return j.db.Close()
}

// Begin starts a new session and returns its ID. Nil receiver returns "".
func (j *Journal) Begin(label string) (string, error) {
	if j == nil {
		return "", nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	id := uuid.New().String()
	if _, err := j.db.Exec(
		"INSERT INTO sessions (id, label, started) VALUES (?, ?, ?)",
		id, label, time.Now().UnixMilli(),
	); err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	log.Debug().Str("session", id).Str("label", label).Msg("journal: session started")
	return id, nil
}

// Record queues an entry for async persistence. Non-blocking; drops the
// entry when the queue is full. No-op on nil receiver.
func (j *Journal) Record(session string, e Entry) {
	if j == nil || session == "" {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	select {
	case j.saveCh <- saveReq{session: session, entry: e}:
	default:
		log.Warn().Str("session", session).Msg("journal: queue full, dropping event")
	}
}

// Flush blocks until every queued entry is written, or 5 seconds pass.
func (j *Journal) Flush() {
	if j == nil {
		return
	}
	done := make(chan struct{})
	select {
	case j.saveCh <- saveReq{flush: done}:
		<-done
	case <-time.After(5 * time.Second):
		log.Warn().Msg("journal: flush timed out waiting to enqueue")
	}
}

func (j *Journal) saveLoop() {
	defer close(j.done)
	for req := range j.saveCh {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		j.write(req.session, req.entry)
	}
}

func (j *Journal) write(session string, e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		"INSERT INTO events (session, scope, element, kind, x, y, at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		session, e.Scope.Kind.String(), string(e.Scope.Element), e.Kind.String(), e.X, e.Y, e.At.UnixMilli(),
	)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("journal: failed to write event")
	}
}

// Sessions lists sessions, newest first.
func (j *Journal) Sessions() ([]Session, error) {
	if j == nil {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`
		SELECT s.id, s.label, s.started, COUNT(e.id)
		FROM sessions s LEFT JOIN events e ON e.session = s.id
		GROUP BY s.id ORDER BY s.started DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var started int64
		if err := rows.Scan(&s.ID, &s.Label, &started, &s.Events); err != nil {
			return nil, err
		}
		s.Started = time.UnixMilli(started)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Events returns a session's entries in recording order.
func (j *Journal) Events(session string) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(
		"SELECT scope, element, kind, x, y, at FROM events WHERE session = ? ORDER BY id",
		session,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var scope, element, kind string
		var at int64
		var e Entry
		if err := rows.Scan(&scope, &element, &kind, &e.X, &e.Y, &at); err != nil {
			return nil, err
		}
		if e.Scope, err = parseScope(scope, element); err != nil {
			return nil, err
		}
		if e.Kind, err = parseKind(kind); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// purgeBefore removes sessions (and their events) started before cutoff.
func (j *Journal) purgeBefore(cutoff time.Time) {
	ms := cutoff.UnixMilli()
	if _, err := j.db.Exec(
		"DELETE FROM events WHERE session IN (SELECT id FROM sessions WHERE started < ?)", ms,
	); err != nil {
		log.Warn().Err(err).Msg("journal: failed to purge old events")
		return
	}
	res, err := j.db.Exec("DELETE FROM sessions WHERE started < ?", ms)
	if err != nil {
		log.Warn().Err(err).Msg("journal: failed to purge old sessions")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("journal: purged old sessions")
	}
}

func parseScope(kind, element string) (split.Scope, error) {
	for _, k := range []split.ScopeKind{split.ScopeDivider, split.ScopeDocument, split.ScopeViewport} {
		if k.String() == kind {
			return split.Scope{Kind: k, Element: split.Element(element)}, nil
		}
	}
	return split.Scope{}, fmt.Errorf("unknown scope %q", kind)
}

func parseKind(s string) (split.EventKind, error) {
	for _, k := range []split.EventKind{split.Press, split.Move, split.Release, split.Resize} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}
