package srs

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNoDueCards       = errors.New("srs: no cards are due")
	ErrSessionIdle      = errors.New("srs: session is not active")
	ErrSessionActive    = errors.New("srs: session already active")
	ErrNotRevealed      = errors.New("srs: reveal the card before rating it")
	ErrRatePending      = errors.New("srs: a rating is already in flight")
	ErrSessionAbandoned = errors.New("srs: session was abandoned while rating")
)

// Card is the minimum a session needs to know about a flashcard.
type Card interface {
	CardID() string
}

// Rater persists a rating and returns the resulting schedule.
type Rater interface {
	Rate(ctx context.Context, cardID string, q Quality) (Schedule, error)
}

// RaterFunc adapts a function to the Rater interface.
type RaterFunc func(ctx context.Context, cardID string, q Quality) (Schedule, error)

func (f RaterFunc) Rate(ctx context.Context, cardID string, q Quality) (Schedule, error) {
	return f(ctx, cardID, q)
}

// State is the externally visible position of a Session.
type State struct {
	Active   bool
	Index    int
	Revealed bool
	Pending  bool
}

// Session walks a snapshot of due cards one at a time: reveal, rate, advance.
// The index is local to the session and never persisted.
//
// A Session is safe for concurrent use; only one Rate may be in flight.
type Session[T Card] struct {
	rater Rater

	mu       sync.Mutex
	cards    []T
	index    int
	active   bool
	revealed bool
	pending  bool
	// epoch changes on Start and Abandon so a rating that finishes after the
	// session moved on cannot advance it.
	epoch uint64
}

// NewSession returns an idle session that persists ratings through rater.
func NewSession[T Card](rater Rater) *Session[T] {
	return &Session[T]{rater: rater}
}

// Start snapshots due and moves to the first card, unrevealed.
func (s *Session[T]) Start(due []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrSessionActive
	}
	if len(due) == 0 {
		return ErrNoDueCards
	}
	s.cards = append([]T(nil), due...)
	s.index = 0
	s.active = true
	s.revealed = false
	s.pending = false
	s.epoch++
	return nil
}

// Reveal shows the back of the current card. Revealing twice is a no-op.
func (s *Session[T]) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrSessionIdle
	}
	s.revealed = true
	return nil
}

// Rate records q for the current card and advances. completed is true exactly
// once, on the rating that exhausts the snapshot. When the rater fails the
// session stays on the same card and the rating may be retried.
func (s *Session[T]) Rate(ctx context.Context, q Quality) (sched Schedule, completed bool, err error) {
	if err := q.Validate(); err != nil {
		return Schedule{}, false, err
	}

	s.mu.Lock()
	switch {
	case !s.active:
		s.mu.Unlock()
		return Schedule{}, false, ErrSessionIdle
	case s.pending:
		s.mu.Unlock()
		return Schedule{}, false, ErrRatePending
	case !s.revealed:
		s.mu.Unlock()
		return Schedule{}, false, ErrNotRevealed
	}
	card := s.cards[s.index]
	epoch := s.epoch
	s.pending = true
	s.mu.Unlock()

	sched, err = s.rater.Rate(ctx, card.CardID(), q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		if err != nil {
			return Schedule{}, false, err
		}
		return sched, false, ErrSessionAbandoned
	}
	s.pending = false
	if err != nil {
		return Schedule{}, false, fmt.Errorf("rate card %s: %w", card.CardID(), err)
	}

	if s.index+1 < len(s.cards) {
		s.index++
		s.revealed = false
		return sched, false, nil
	}

	s.reset()
	return sched, true, nil
}

// Abandon drops the session back to idle. A rating already sent to the
// rater still completes there but no longer moves this session.
func (s *Session[T]) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session[T]) reset() {
	s.cards = nil
	s.index = 0
	s.active = false
	s.revealed = false
	s.pending = false
	s.epoch++
}

// Current returns the card being reviewed, if any.
func (s *Session[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.active {
		return zero, false
	}
	return s.cards[s.index], true
}

// State reports the session position.
func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Active: s.active, Index: s.index, Revealed: s.revealed, Pending: s.pending}
}

// Progress returns the 1-based position of the current card and the snapshot size.
func (s *Session[T]) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0, 0
	}
	return s.index + 1, len(s.cards)
}
