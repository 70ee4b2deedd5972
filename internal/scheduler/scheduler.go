// Package scheduler advances a card's learning state by one review. The core
// stability/difficulty/interval computation comes from go-fsrs; this package only
// layers the early-review ramp ceiling, interval rounding, and the learn-ahead
// re-queue signal on top of what the library returns (component D).
package scheduler

import (
	"math"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"

	"repeater/internal/card"
)

// LearnAheadThreshold is the shared 20-minute lookahead used both to consider
// cards "due now" in the session queue and to decide post-grade re-admission here.
// Both must use the same constant, or a card could be re-admitted into a session it
// would not yet be considered due for.
const LearnAheadThreshold = 20 * time.Minute

// params is the FSRS parameter set applied to every card: go-fsrs's published
// defaults with retention tuned to this scheduler's target recall, matching how
// the teacher's own collection sets up its scheduler.
var params = newParams()

func newParams() fsrs.Parameters {
	p := fsrs.DefaultParam()
	p.RequestRetention = 0.9
	return p
}

// Result is the outcome of a single graded review.
type Result struct {
	State   card.CardState
	Readmit bool // true if the effective interval fell under LearnAheadThreshold
}

// ceiling returns the early-ramp ceiling duration for a pre-increment review count
// and quality, and whether an override applies at all.
func ceiling(rc int, quality card.Quality) (time.Duration, bool) {
	switch rc {
	case 0:
		return time.Minute, true
	case 1:
		if quality == card.Pass {
			return 10 * time.Minute, true
		}
		return time.Minute, true
	case 2:
		if quality == card.Pass {
			return 24 * time.Hour, true
		}
		return 10 * time.Minute, true
	default:
		return 0, false
	}
}

// toFSRSCard rebuilds go-fsrs's Card representation from persisted state. A
// never-reviewed card gets the library's own zero state (fsrs.NewCard); anything
// else is represented as a Review-state card so the library runs its normal
// recall-stability path — ceiling() supplies the early-ramp policy the library has
// no notion of.
func toFSRSCard(state card.CardState) fsrs.Card {
	if state.IsNew() {
		return fsrs.NewCard()
	}
	return fsrs.Card{
		Stability:  *state.Stability,
		Difficulty: *state.Difficulty,
		Reps:       uint64(state.ReviewCount),
		State:      fsrs.Review,
		LastReview: *state.LastReviewedAt,
	}
}

// toRating maps the two-button grade onto go-fsrs's rating scale; Hard and Easy
// are never selected since this interface has no buttons for them.
func toRating(q card.Quality) fsrs.Rating {
	if q == card.Fail {
		return fsrs.Again
	}
	return fsrs.Good
}

// Update applies one graded review to state and returns the new state plus the
// learn-ahead re-admission flag. state may represent a never-reviewed card
// (state.ReviewCount == 0, all scheduling fields nil).
func Update(state card.CardState, quality card.Quality, now time.Time) Result {
	rc := state.ReviewCount

	sched := fsrs.NewFSRS(params).Repeat(toFSRSCard(state), now)
	next := sched[toRating(quality)].Card

	rawDays := next.Due.Sub(now).Hours() / 24
	effective := next.Due.Sub(now)

	if cap, ok := ceiling(rc, quality); ok && effective > cap {
		effective = cap
	}
	if effective < 0 {
		effective = 0
	}

	effectiveDays := effective.Hours() / 24
	var intervalDays int
	if effectiveDays >= 1 {
		intervalDays = int(math.Round(effectiveDays))
	}

	due := now.Add(effective)

	newState := card.CardState{
		Hash:           state.Hash,
		AddedAt:        state.AddedAt,
		LastReviewedAt: timePtr(now),
		Stability:      floatPtr(next.Stability),
		Difficulty:     floatPtr(next.Difficulty),
		IntervalRaw:    floatPtr(rawDays),
		IntervalDays:   intPtr(intervalDays),
		DueDate:        timePtr(due),
		ReviewCount:    rc + 1,
	}

	return Result{
		State:   newState,
		Readmit: effective < LearnAheadThreshold,
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(f float64) *float64    { return &f }
func intPtr(i int) *int              { return &i }
