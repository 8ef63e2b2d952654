package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

// FlashcardFilter narrows ListFlashcards. Empty fields match everything.
type FlashcardFilter struct {
	CourseID string
	Tag      string
}

// FlashcardPatch holds the optional fields of a flashcard update.
// ClearCourse detaches the card from its course.
type FlashcardPatch struct {
	Front       *string
	Back        *string
	CourseID    *string
	ClearCourse bool
	Tags        *[]string
	Difficulty  *models.Difficulty
}

func (s *Store) flashcards(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Course").Preload("Review")
}

// ListFlashcards returns the user's cards, oldest first, with their course
// and review schedule loaded.
func (s *Store) ListFlashcards(ctx context.Context, userID uint, filter FlashcardFilter) ([]models.Flashcard, error) {
	query := s.flashcards(ctx).Where("user_id = ?", userID)
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}

	cards := []models.Flashcard{}
	if err := query.Order("created_at asc, id asc").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	if filter.Tag == "" {
		return cards, nil
	}

	tagged := cards[:0]
	for _, card := range cards {
		if hasTag(card.Tags, filter.Tag) {
			tagged = append(tagged, card)
		}
	}
	return tagged, nil
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

// DueFlashcards returns the cards due at now. It always reads fresh rows,
// so a rating is reflected on the next call.
func (s *Store) DueFlashcards(ctx context.Context, userID uint, now time.Time) ([]models.Flashcard, error) {
	cards, err := s.ListFlashcards(ctx, userID, FlashcardFilter{})
	if err != nil {
		return nil, err
	}
	return srs.SelectDue(cards, now), nil
}

// GetFlashcard loads one of the user's cards.
func (s *Store) GetFlashcard(ctx context.Context, userID uint, id string) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := s.flashcards(ctx).Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		return nil, notFound(err, "flashcard", id)
	}
	return &card, nil
}

func validateCard(card *models.Flashcard) error {
	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	switch {
	case card.Front == "":
		return fmt.Errorf("%w: frente is required", ErrInvalid)
	case card.Back == "":
		return fmt.Errorf("%w: verso is required", ErrInvalid)
	case !card.Difficulty.Valid():
		return fmt.Errorf("%w: dificuldade must be 0, 1 or 2", ErrInvalid)
	}
	card.Tags = normalizeTags(card.Tags)
	return nil
}

// CreateFlashcard stores a new, never reviewed card for the user. A course
// reference must point at one of the user's courses.
func (s *Store) CreateFlashcard(ctx context.Context, userID uint, card *models.Flashcard) error {
	if err := validateCard(card); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	if card.CourseID != nil {
		if _, err := getCourse(db, userID, *card.CourseID); err != nil {
			return err
		}
	}

	id, err := newID()
	if err != nil {
		return err
	}
	card.ID = id
	card.UserID = userID
	card.Course = nil
	card.Review = nil
	if err := db.Create(card).Error; err != nil {
		return fmt.Errorf("create flashcard: %w", err)
	}
	return nil
}

// UpdateFlashcard applies patch to one of the user's cards. The review
// schedule is never touched here.
func (s *Store) UpdateFlashcard(ctx context.Context, userID uint, id string, patch FlashcardPatch) (*models.Flashcard, error) {
	db := s.db.WithContext(ctx)
	card, err := s.GetFlashcard(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Front != nil {
		card.Front = *patch.Front
	}
	if patch.Back != nil {
		card.Back = *patch.Back
	}
	if patch.Tags != nil {
		card.Tags = *patch.Tags
	}
	if patch.Difficulty != nil {
		card.Difficulty = *patch.Difficulty
	}
	switch {
	case patch.ClearCourse:
		card.CourseID = nil
	case patch.CourseID != nil:
		if _, err := getCourse(db, userID, *patch.CourseID); err != nil {
			return nil, err
		}
		card.CourseID = patch.CourseID
	}
	if err := validateCard(card); err != nil {
		return nil, err
	}

	err = db.Model(card).Select("Front", "Back", "CourseID", "Tags", "Difficulty").Updates(card).Error
	if err != nil {
		return nil, fmt.Errorf("update flashcard %s: %w", id, err)
	}
	return s.GetFlashcard(ctx, userID, id)
}

// DeleteFlashcard removes a card together with its schedule and history.
func (s *Store) DeleteFlashcard(ctx context.Context, userID uint, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Flashcard{})
		if result.Error != nil {
			return fmt.Errorf("delete flashcard %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("flashcard %s: %w", id, ErrNotFound)
		}
		if err := tx.Where("flashcard_id = ?", id).Delete(&models.ReviewSchedule{}).Error; err != nil {
			return fmt.Errorf("delete schedule of %s: %w", id, err)
		}
		if err := tx.Where("flashcard_id = ?", id).Delete(&models.ReviewLog{}).Error; err != nil {
			return fmt.Errorf("delete history of %s: %w", id, err)
		}
		return nil
	})
}

// InsertGenerated stores a batch of AI-generated cards for a course in one
// transaction. Either every card is stored or none is.
func (s *Store) InsertGenerated(ctx context.Context, userID uint, courseID string, cards []models.Flashcard) ([]models.Flashcard, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalid)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := getCourse(tx, userID, courseID)
		if err != nil {
			return err
		}
		for i := range cards {
			card := &cards[i]
			if err := validateCard(card); err != nil {
				return fmt.Errorf("generated card %d: %w", i, err)
			}
			id, err := newID()
			if err != nil {
				return err
			}
			card.ID = id
			card.UserID = userID
			card.CourseID = &course.ID
			card.Course = nil
			card.Review = nil
			card.GeneratedByAI = true
		}
		if err := tx.Create(&cards).Error; err != nil {
			return fmt.Errorf("insert generated flashcards: %w", err)
		}
		for i := range cards {
			cards[i].Course = course
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}
