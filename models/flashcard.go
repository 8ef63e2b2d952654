package models

import (
	"time"

	"github.com/andrewpaige1/revisa-api/srs"
)

// Difficulty is the authored difficulty tier of a card. It is independent
// of the review schedule.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Flashcard represents an individual flashcard
type Flashcard struct {
	ID     string `gorm:"primaryKey;size:32" json:"id"`
	UserID uint   `gorm:"not null;index" json:"-"`
	Front  string `gorm:"not null;size:2000" json:"frente"`
	Back   string `gorm:"not null;size:4000" json:"verso"`

	CourseID *string `gorm:"size:32;index" json:"disciplinaId"`
	Course   *Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"disciplina,omitempty"`

	Tags          []string   `gorm:"serializer:json;type:text" json:"tags"`
	Difficulty    Difficulty `gorm:"not null;default:0" json:"dificuldade"`
	GeneratedByAI bool       `gorm:"not null;default:false" json:"gerado_por_ia"`

	Review *ReviewSchedule `gorm:"foreignKey:FlashcardID;constraint:OnDelete:CASCADE;" json:"revisao"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f Flashcard) CardID() string {
	return f.ID
}

// NextReview reports the due date, or ok=false when the card was never rated.
func (f Flashcard) NextReview() (time.Time, bool) {
	if f.Review == nil {
		return time.Time{}, false
	}
	return f.Review.DueAt, true
}

var _ srs.Scheduled = Flashcard{}
var _ srs.Card = Flashcard{}
