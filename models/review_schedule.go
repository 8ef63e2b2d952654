package models

import (
	"time"

	"github.com/andrewpaige1/revisa-api/srs"
)

// ReviewSchedule is the persisted spaced-repetition state of one flashcard.
// It exists only once the card has been rated.
type ReviewSchedule struct {
	ID           uint        `gorm:"primaryKey" json:"-"`
	FlashcardID  string      `gorm:"size:32;uniqueIndex;not null" json:"flashcardId"`
	DueAt        time.Time   `gorm:"not null;index" json:"proxima_revisao"`
	IntervalDays float64     `gorm:"not null;default:0" json:"intervalo_dias"`
	Repetitions  int         `gorm:"not null;default:0" json:"repeticoes"`
	Ease         float64     `gorm:"not null" json:"fator_facilidade"`
	LastQuality  srs.Quality `gorm:"not null" json:"ultima_qualidade"`
	LastReview   time.Time   `gorm:"not null" json:"ultima_revisao"`
	UpdatedAt    time.Time   `json:"-"`
}

// Schedule converts the row into the scheduler's representation.
func (r *ReviewSchedule) Schedule() *srs.Schedule {
	if r == nil {
		return nil
	}
	return &srs.Schedule{
		DueAt:        r.DueAt,
		IntervalDays: r.IntervalDays,
		Repetitions:  r.Repetitions,
		Ease:         r.Ease,
		LastQuality:  r.LastQuality,
		LastReview:   r.LastReview,
	}
}

// Apply copies s into the row, leaving identity fields alone.
func (r *ReviewSchedule) Apply(s srs.Schedule) {
	r.DueAt = s.DueAt
	r.IntervalDays = s.IntervalDays
	r.Repetitions = s.Repetitions
	r.Ease = s.Ease
	r.LastQuality = s.LastQuality
	r.LastReview = s.LastReview
}
