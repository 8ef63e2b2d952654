package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/revisa-api/gamification"
	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

// ReviewFlashcard rates one of the user's cards at now. The new schedule,
// the review log row and the user's XP and streak are written in one
// transaction, so a failed rating leaves nothing behind.
func (s *Store) ReviewFlashcard(ctx context.Context, userID uint, id string, q srs.Quality, now time.Time) (*models.ReviewSchedule, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	// Timestamps are stored in UTC so that range queries compare correctly on
	// every driver; the streak still follows the caller's calendar.
	at := now.UTC()

	var row *models.ReviewSchedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Flashcard
		if err := tx.Preload("Review").Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
			return notFound(err, "flashcard", id)
		}

		prior := card.Review.Schedule()
		next, err := s.scheduler.Next(prior, q, at)
		if err != nil {
			return err
		}

		entry := models.ReviewLog{
			FlashcardID: card.ID,
			UserID:      userID,
			Quality:     q,
			ReviewedAt:  at,
			NewDueAt:    next.DueAt,
			NewInterval: next.IntervalDays,
			NewEase:     next.Ease,
		}
		if prior != nil {
			due := prior.DueAt
			entry.PrevDueAt = &due
			entry.PrevInterval = prior.IntervalDays
			entry.PrevEase = prior.Ease
		}

		row = card.Review
		if row == nil {
			row = &models.ReviewSchedule{FlashcardID: card.ID}
		}
		row.Apply(next)
		if err := saveSchedule(tx, row); err != nil {
			return fmt.Errorf("save schedule of %s: %w", id, err)
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("log review of %s: %w", id, err)
		}
		return awardReview(tx, userID, q, now)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// saveSchedule updates a loaded row or upserts a new one on flashcard_id, so
// two first ratings of the same card both succeed and the last one wins.
func saveSchedule(tx *gorm.DB, row *models.ReviewSchedule) error {
	if row.ID != 0 {
		return tx.Save(row).Error
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "flashcard_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"due_at", "interval_days", "repetitions", "ease", "last_quality", "last_review", "updated_at"}),
	}).Create(row).Error
}

func awardReview(tx *gorm.DB, userID uint, q srs.Quality, now time.Time) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return notFound(err, "user", fmt.Sprint(userID))
	}
	err := tx.Model(&user).Updates(map[string]any{
		"xp":              user.XP + gamification.Points(q),
		"streak_days":     gamification.NextStreak(user.StreakDays, user.LastStudyDate, now),
		"last_study_date": now,
	}).Error
	if err != nil {
		return fmt.Errorf("award review to user %d: %w", userID, err)
	}
	return nil
}

// ReviewHistory returns the ratings of one of the user's cards, newest first.
func (s *Store) ReviewHistory(ctx context.Context, userID uint, id string) ([]models.ReviewLog, error) {
	if _, err := s.GetFlashcard(ctx, userID, id); err != nil {
		return nil, err
	}
	logs := []models.ReviewLog{}
	err := s.db.WithContext(ctx).
		Where("flashcard_id = ? AND user_id = ?", id, userID).
		Order("reviewed_at desc, id desc").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("review history of %s: %w", id, err)
	}
	return logs, nil
}

// Stats summarizes a user's deck at a point in time.
type Stats struct {
	Total         int    `json:"total"`
	Due           int    `json:"due"`
	NeverReviewed int    `json:"never_reviewed"`
	ByDifficulty  [3]int `json:"por_dificuldade"`
	GeneratedByAI int    `json:"gerados_por_ia"`
	ReviewsToday  int64  `json:"reviews_today"`
	XP            int    `json:"xp"`
	StreakDays    int    `json:"streak_days"`
}

// Stats computes deck statistics for the user at now.
func (s *Store) Stats(ctx context.Context, userID uint, now time.Time) (Stats, error) {
	var stats Stats
	cards, err := s.ListFlashcards(ctx, userID, FlashcardFilter{})
	if err != nil {
		return stats, err
	}

	stats.Total = len(cards)
	stats.Due = len(srs.SelectDue(cards, now))
	for _, card := range cards {
		if card.Review == nil {
			stats.NeverReviewed++
		}
		if card.Difficulty.Valid() {
			stats.ByDifficulty[card.Difficulty]++
		}
		if card.GeneratedByAI {
			stats.GeneratedByAI++
		}
	}

	err = s.db.WithContext(ctx).Model(&models.ReviewLog{}).
		Where("user_id = ? AND reviewed_at >= ?", userID, startOfDay(now).UTC()).
		Count(&stats.ReviewsToday).Error
	if err != nil {
		return stats, fmt.Errorf("count reviews: %w", err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return stats, err
	}
	stats.XP = user.XP
	stats.StreakDays = user.StreakDays
	return stats, nil
}
