package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a disciplina the student is tracking. Flashcards point at it
// by id only.
type Course struct {
	ID        string         `gorm:"primaryKey;size:32" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	Name      string         `gorm:"not null;size:150" json:"nome"`
	Favorite  bool           `gorm:"not null;default:false" json:"favorita"`
	Order     int            `gorm:"not null;default:0" json:"ordem"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
