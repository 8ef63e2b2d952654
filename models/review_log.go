package models

import (
	"time"

	"github.com/andrewpaige1/revisa-api/srs"
)

// ReviewLog is an append-only record of one rating.
type ReviewLog struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	FlashcardID  string      `gorm:"size:32;not null;index" json:"flashcardId"`
	UserID       uint        `gorm:"not null;index" json:"-"`
	Quality      srs.Quality `gorm:"not null" json:"quality"`
	ReviewedAt   time.Time   `gorm:"not null;index" json:"reviewed_at"`
	PrevDueAt    *time.Time  `json:"prev_due_at,omitempty"`
	PrevInterval float64     `json:"prev_interval"`
	PrevEase     float64     `json:"prev_ease"`
	NewDueAt     time.Time   `gorm:"not null" json:"new_due_at"`
	NewInterval  float64     `json:"new_interval"`
	NewEase      float64     `json:"new_ease"`
}
