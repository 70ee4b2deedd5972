// Package store persists and queries per-card learning state in an embedded SQLite
// database. All writes are individually atomic; a single process is assumed.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"repeater/internal/card"
	"repeater/internal/queue"
	"repeater/internal/repeatererr"
	"repeater/internal/scheduler"
)

const timeLayout = time.RFC3339Nano

// Store is the persistence interface the rest of the core depends on. Business
// logic interacts with this interface, not directly with SQL.
type Store interface {
	UpsertNew(hash string, addedAt time.Time) error
	Load(hash string) (*card.CardState, error)
	UpdateAfterReview(state card.CardState) error
	QuerySessionCandidates(now time.Time, candidates []Candidate, caps queue.Caps) ([]string, error)
	Summary(now time.Time) (Summary, error)
	Close() error
}

// Candidate pairs a currently-indexed hash with its file-order position, used to
// order new cards deterministically when seeding a session.
type Candidate struct {
	Hash  string
	Order int
}

// Summary is the dashboard counts shown to the user before a study session.
type Summary struct {
	New           int
	DueNow        int
	Overdue       int
	UpcomingToday int
	UpcomingWeek  int
}

// SQLiteStore implements Store using SQLite as the backend.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates (or attaches to) the SQLite database at path and runs migrations.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, &repeatererr.StoreError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		return nil, &repeatererr.StoreError{Op: "ping", Err: err}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, &repeatererr.StoreError{Op: "migrate", Err: err}
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// UpsertNew inserts a review_count=0 row if hash is unseen; it never overwrites
// existing scheduling state.
func (s *SQLiteStore) UpsertNew(hash string, addedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO cards (card_hash, added_at, review_count) VALUES (?, ?, 0)
		 ON CONFLICT(card_hash) DO NOTHING`,
		hash, addedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return &repeatererr.StoreError{Op: "upsert_new", Err: err}
	}
	return nil
}

// Load fetches a card's state, or a *repeatererr.NotFoundError if hash is unknown.
func (s *SQLiteStore) Load(hash string) (*card.CardState, error) {
	row := s.db.QueryRow(
		`SELECT card_hash, added_at, last_reviewed_at, stability, difficulty,
		        interval_raw, interval_days, due_date, review_count
		 FROM cards WHERE card_hash = ?`, hash)

	state, err := scanCardState(row)
	if err == sql.ErrNoRows {
		return nil, &repeatererr.NotFoundError{What: fmt.Sprintf("card %s", hash)}
	}
	if err != nil {
		return nil, &repeatererr.StoreError{Op: "load", Err: err}
	}
	return state, nil
}

// UpdateAfterReview atomically writes all scheduling fields and the incremented
// review_count.
func (s *SQLiteStore) UpdateAfterReview(state card.CardState) error {
	_, err := s.db.Exec(
		`UPDATE cards SET last_reviewed_at = ?, stability = ?, difficulty = ?,
		                  interval_raw = ?, interval_days = ?, due_date = ?,
		                  review_count = ?
		 WHERE card_hash = ?`,
		formatTime(state.LastReviewedAt), state.Stability, state.Difficulty,
		state.IntervalRaw, state.IntervalDays, formatTime(state.DueDate),
		state.ReviewCount, state.Hash,
	)
	if err != nil {
		return &repeatererr.StoreError{Op: "update_after_review", Err: err}
	}
	return nil
}

// QuerySessionCandidates loads state for every candidate and returns the ordered,
// capped session seed.
func (s *SQLiteStore) QuerySessionCandidates(now time.Time, candidates []Candidate, caps queue.Caps) ([]string, error) {
	items := make([]queue.Item, 0, len(candidates))
	for _, c := range candidates {
		st, err := s.Load(c.Hash)
		if err != nil {
			return nil, err
		}
		items = append(items, queue.Item{Hash: c.Hash, State: *st, Order: c.Order})
	}
	return queue.Seed(items, now, caps), nil
}

// Summary returns dashboard counts for the given wall-clock time.
func (s *SQLiteStore) Summary(now time.Time) (Summary, error) {
	rows, err := s.db.Query(
		`SELECT card_hash, added_at, last_reviewed_at, stability, difficulty,
		        interval_raw, interval_days, due_date, review_count
		 FROM cards`)
	if err != nil {
		return Summary{}, &repeatererr.StoreError{Op: "summary", Err: err}
	}
	defer rows.Close()

	var sum Summary
	todayEnd := endOfDay(now)
	weekEnd := now.Add(7 * 24 * time.Hour)
	lookahead := now.Add(scheduler.LearnAheadThreshold)

	for rows.Next() {
		state, err := scanCardStateRows(rows)
		if err != nil {
			return Summary{}, &repeatererr.StoreError{Op: "summary", Err: err}
		}
		switch {
		case state.IsNew():
			sum.New++
		case state.DueDate.Before(now):
			sum.Overdue++
		case !state.DueDate.After(lookahead):
			sum.DueNow++
		case !state.DueDate.After(todayEnd):
			sum.UpcomingToday++
		case !state.DueDate.After(weekEnd):
			sum.UpcomingWeek++
		}
	}
	return sum, rows.Err()
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func formatTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}
