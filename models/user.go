package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the owner of courses and flashcards, keyed by the token subject.
type User struct {
	gorm.Model    `json:"-"`
	Auth0ID       string     `gorm:"uniqueIndex;not null;size:191" json:"-"`
	Nickname      string     `gorm:"size:100" json:"nickname"`
	XP            int        `gorm:"not null;default:0" json:"xp"`
	StreakDays    int        `gorm:"not null;default:0" json:"streak_days"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}
