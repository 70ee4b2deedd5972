package scheduler

import (
	"testing"
	"time"

	"repeater/internal/card"
)

func newCardState(hash string) card.CardState {
	return card.CardState{Hash: hash, AddedAt: time.Now()}
}

func TestNewCardPassEarlyRamp(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	state := newCardState("h1")

	res := Update(state, card.Pass, t0)

	if res.State.ReviewCount != 1 {
		t.Fatalf("expected review_count 1, got %d", res.State.ReviewCount)
	}
	wantDue := t0.Add(time.Minute)
	if !res.State.DueDate.Equal(wantDue) {
		t.Fatalf("expected due_date %v, got %v", wantDue, *res.State.DueDate)
	}
	if *res.State.IntervalDays != 0 {
		t.Fatalf("expected interval_days 0, got %d", *res.State.IntervalDays)
	}
	if !res.Readmit {
		t.Fatalf("expected re-admit flag true")
	}
}

func TestSecondReviewFailEarlyRamp(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	prevReview := t0.Add(-time.Minute)
	s, d := 1.1829, 5.0
	state := card.CardState{
		Hash:           "h1",
		AddedAt:        t0.Add(-time.Hour),
		LastReviewedAt: &prevReview,
		Stability:      &s,
		Difficulty:     &d,
		ReviewCount:    1,
	}

	res := Update(state, card.Fail, t0)

	if res.State.ReviewCount != 2 {
		t.Fatalf("expected review_count 2, got %d", res.State.ReviewCount)
	}
	wantDue := t0.Add(time.Minute)
	if !res.State.DueDate.Equal(wantDue) {
		t.Fatalf("expected due_date %v, got %v", wantDue, *res.State.DueDate)
	}
	if !res.Readmit {
		t.Fatalf("expected re-admit flag true")
	}
}

func TestInvariantsHoldAcrossReviews(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	state := newCardState("h1")

	qualities := []card.Quality{card.Pass, card.Pass, card.Pass, card.Pass, card.Fail}
	now := t0
	for i, q := range qualities {
		now = now.Add(2 * 24 * time.Hour)
		res := Update(state, q, now)
		state = res.State

		if state.ReviewCount != i+1 {
			t.Fatalf("step %d: expected review_count %d, got %d", i, i+1, state.ReviewCount)
		}
		if state.Stability == nil || *state.Stability <= 0 {
			t.Fatalf("step %d: expected stability > 0, got %v", i, state.Stability)
		}
		if state.Difficulty == nil || *state.Difficulty < 1 || *state.Difficulty > 10 {
			t.Fatalf("step %d: expected 1 <= difficulty <= 10, got %v", i, state.Difficulty)
		}
		if state.IntervalRaw == nil || state.DueDate == nil {
			t.Fatalf("step %d: expected all scheduling fields non-nil", i)
		}
	}
}

func TestNegativeElapsedClampedToZero(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	future := t0.Add(time.Hour)
	s, d := 5.0, 5.0
	state := card.CardState{
		Hash:           "h1",
		AddedAt:        t0,
		LastReviewedAt: &future, // clock skew: last review "after" now
		Stability:      &s,
		Difficulty:     &d,
		ReviewCount:    3,
	}

	res := Update(state, card.Pass, t0)
	if res.State.Stability == nil || *res.State.Stability <= 0 {
		t.Fatalf("expected positive stability despite clock skew, got %v", res.State.Stability)
	}
}

func TestNoOverrideAtReviewCountThreeOrMore(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	prevReview := t0.Add(-10 * 24 * time.Hour)
	s, d := 20.0, 5.0
	state := card.CardState{
		Hash:           "h1",
		AddedAt:        t0.Add(-30 * 24 * time.Hour),
		LastReviewedAt: &prevReview,
		Stability:      &s,
		Difficulty:     &d,
		ReviewCount:    3,
	}

	res := Update(state, card.Pass, t0)
	if res.Readmit {
		t.Fatalf("expected no re-admission once graduated past the ramp")
	}
	if *res.State.IntervalDays < 1 {
		t.Fatalf("expected interval_days >= 1 for a graduated card, got %d", *res.State.IntervalDays)
	}
}
