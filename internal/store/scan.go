package store

import (
	"database/sql"
	"time"

	"repeater/internal/card"
)

// rowScanner abstracts over *sql.Row and *sql.Rows so both callers share one
// decoding path.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCardState(r rowScanner) (*card.CardState, error) {
	return scanInto(r)
}

func scanCardStateRows(r *sql.Rows) (*card.CardState, error) {
	return scanInto(r)
}

func scanInto(r rowScanner) (*card.CardState, error) {
	var (
		hash                           string
		addedAt                        string
		lastReviewedAt, dueDate        sql.NullString
		stability, difficulty, ivlRaw  sql.NullFloat64
		intervalDays                   sql.NullInt64
		reviewCount                    int
	)

	if err := r.Scan(&hash, &addedAt, &lastReviewedAt, &stability, &difficulty,
		&ivlRaw, &intervalDays, &dueDate, &reviewCount); err != nil {
		return nil, err
	}

	state := &card.CardState{Hash: hash, ReviewCount: reviewCount}
	if t, err := time.Parse(timeLayout, addedAt); err == nil {
		state.AddedAt = t
	}
	if lastReviewedAt.Valid {
		if t, err := time.Parse(timeLayout, lastReviewedAt.String); err == nil {
			state.LastReviewedAt = &t
		}
	}
	if dueDate.Valid {
		if t, err := time.Parse(timeLayout, dueDate.String); err == nil {
			state.DueDate = &t
		}
	}
	if stability.Valid {
		v := stability.Float64
		state.Stability = &v
	}
	if difficulty.Valid {
		v := difficulty.Float64
		state.Difficulty = &v
	}
	if ivlRaw.Valid {
		v := ivlRaw.Float64
		state.IntervalRaw = &v
	}
	if intervalDays.Valid {
		v := int(intervalDays.Int64)
		state.IntervalDays = &v
	}
	return state, nil
}
