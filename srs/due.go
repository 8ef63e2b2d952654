package srs

import "time"

// Scheduled is anything carrying an optional next-review timestamp.
// ok is false when the item has never been reviewed.
type Scheduled interface {
	NextReview() (due time.Time, ok bool)
}

// IsDue reports whether item should be reviewed at now: never reviewed, or
// its next review is at or before now.
func IsDue(item Scheduled, now time.Time) bool {
	due, ok := item.NextReview()
	if !ok {
		return true
	}
	return !due.After(now)
}

// SelectDue returns the due items in their original order. It never mutates
// items and holds no state, so the result must be recomputed after every rating.
func SelectDue[T Scheduled](items []T, now time.Time) []T {
	due := make([]T, 0, len(items))
	for _, item := range items {
		if IsDue(item, now) {
			due = append(due, item)
		}
	}
	return due
}

// NextReview lets a *Schedule act as a Scheduled value; nil means never reviewed.
func (s *Schedule) NextReview() (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return s.DueAt, true
}
