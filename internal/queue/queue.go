// Package queue implements the session priority discipline: merging overdue,
// soon-due, and new cards into a single drill queue, honoring optional per-session
// caps, and re-admitting short-interval cards within the same session
// (component E).
package queue

import (
	"math/rand"
	"sort"
	"time"

	"repeater/internal/card"
	"repeater/internal/scheduler"
)

// Item is one candidate hash considered for session seeding.
type Item struct {
	Hash  string
	State card.CardState
	// Order is this card's position across all indexed files (file order, then
	// source position within the file), used to order new cards deterministically.
	Order int
}

type class int

const (
	classOverdue class = iota
	classDueNow
	classNew
	classExcluded
)

func classify(it Item, now time.Time) class {
	if it.State.IsNew() {
		return classNew
	}
	due := it.State.DueDate
	if due == nil {
		return classExcluded
	}
	if due.Before(now) {
		return classOverdue
	}
	if !due.After(now.Add(scheduler.LearnAheadThreshold)) {
		return classDueNow
	}
	return classExcluded
}

// Caps bounds the new-card cohort and the final merged sequence. A nil field
// means "no limit".
type Caps struct {
	NewCardLimit *int
	CardLimit    *int
	// ShuffleSeed, when non-nil, permutes the capped sequence with a seeded PRNG
	// so sessions are reproducible under the same seed.
	ShuffleSeed *int64
}

// Seed builds the ordered pending sequence for a new session.
func Seed(items []Item, now time.Time, caps Caps) []string {
	var overdue, dueNow, fresh []Item
	for _, it := range items {
		switch classify(it, now) {
		case classOverdue:
			overdue = append(overdue, it)
		case classDueNow:
			dueNow = append(dueNow, it)
		case classNew:
			fresh = append(fresh, it)
		}
	}

	sortByDueThenHash(overdue)
	sortByDueThenHash(dueNow)
	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Order < fresh[j].Order })

	if caps.NewCardLimit != nil && len(fresh) > *caps.NewCardLimit {
		fresh = fresh[:*caps.NewCardLimit]
	}

	merged := make([]Item, 0, len(overdue)+len(dueNow)+len(fresh))
	merged = append(merged, overdue...)
	merged = append(merged, dueNow...)
	merged = append(merged, fresh...)

	if caps.CardLimit != nil && len(merged) > *caps.CardLimit {
		merged = merged[:*caps.CardLimit]
	}

	if caps.ShuffleSeed != nil {
		rng := rand.New(rand.NewSource(*caps.ShuffleSeed))
		rng.Shuffle(len(merged), func(i, j int) { merged[i], merged[j] = merged[j], merged[i] })
	}

	hashes := make([]string, len(merged))
	for i, it := range merged {
		hashes[i] = it.Hash
	}
	return hashes
}

func sortByDueThenHash(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].State.DueDate, items[j].State.DueDate
		if !di.Equal(*dj) {
			return di.Before(*dj)
		}
		return items[i].Hash < items[j].Hash
	})
}

// Queue is the mutable runtime sequence of pending card hashes for one session.
type Queue struct {
	pending []string
}

// New constructs a Queue from a seeded hash order.
func New(seeded []string) *Queue {
	q := &Queue{pending: append([]string(nil), seeded...)}
	return q
}

// Len reports how many cards remain pending.
func (q *Queue) Len() int { return len(q.pending) }

// Next pops the next pending hash. The caller must check Len() > 0 first.
func (q *Queue) Next() string {
	h := q.pending[0]
	q.pending = q.pending[1:]
	return h
}

// Readmit appends hash to the tail of the pending sequence. Re-admitted cards
// never count against NewCardLimit or CardLimit a second time because they
// bypass Seed entirely.
func (q *Queue) Readmit(hash string) {
	q.pending = append(q.pending, hash)
}
