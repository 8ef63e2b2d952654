package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

var now = time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *models.User) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Flashcard{}, &models.ReviewSchedule{}, &models.ReviewLog{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s := New(db, nil)
	user, err := s.SyncUser(context.Background(), "auth0|student", "ana")
	require.NoError(t, err)
	return s, user
}

func mustCourse(t *testing.T, s *Store, userID uint, name string) *models.Course {
	t.Helper()
	course := &models.Course{Name: name}
	require.NoError(t, s.CreateCourse(context.Background(), userID, course))
	return course
}

func mustCard(t *testing.T, s *Store, userID uint, front string) *models.Flashcard {
	t.Helper()
	card := &models.Flashcard{Front: front, Back: "resposta de " + front}
	require.NoError(t, s.CreateFlashcard(context.Background(), userID, card))
	return card
}

func TestSyncUser(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()

	again, err := s.SyncUser(ctx, "auth0|student", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "ana", again.Nickname)

	renamed, err := s.SyncUser(ctx, "auth0|student", "ana.s")
	require.NoError(t, err)
	assert.Equal(t, user.ID, renamed.ID)

	loaded, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.s", loaded.Nickname)
}

func TestCreateFlashcard(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	course := mustCourse(t, s, user.ID, "Bioquímica")

	card := &models.Flashcard{
		Front:      "  O que é uma enzima? ",
		Back:       "Uma proteína catalisadora",
		CourseID:   &course.ID,
		Tags:       []string{"proteinas", " Proteinas", "", "enzimas"},
		Difficulty: models.DifficultyMedium,
	}
	require.NoError(t, s.CreateFlashcard(ctx, user.ID, card))
	assert.NotEmpty(t, card.ID)

	loaded, err := s.GetFlashcard(ctx, user.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "O que é uma enzima?", loaded.Front)
	assert.Equal(t, []string{"proteinas", "enzimas"}, loaded.Tags)
	assert.Nil(t, loaded.Review)
	require.NotNil(t, loaded.Course)
	assert.Equal(t, "Bioquímica", loaded.Course.Name)
}

func TestCreateFlashcardValidation(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		card models.Flashcard
	}{
		{"missing front", models.Flashcard{Back: "b"}},
		{"blank back", models.Flashcard{Front: "f", Back: "   "}},
		{"bad difficulty", models.Flashcard{Front: "f", Back: "b", Difficulty: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.CreateFlashcard(ctx, user.ID, &tt.card), ErrInvalid)
		})
	}

	foreign := "not-my-course"
	err := s.CreateFlashcard(ctx, user.ID, &models.Flashcard{Front: "f", Back: "b", CourseID: &foreign})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFlashcardsAreScopedToOwner(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	other, err := s.SyncUser(ctx, "auth0|other", "bruno")
	require.NoError(t, err)

	card := mustCard(t, s, user.ID, "mitose")

	_, err = s.GetFlashcard(ctx, other.ID, card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ReviewFlashcard(ctx, other.ID, card.ID, srs.QualityGood, now)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteFlashcard(ctx, other.ID, card.ID), ErrNotFound)

	cards, err := s.ListFlashcards(ctx, other.ID, FlashcardFilter{})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListFlashcardsFilters(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	course := mustCourse(t, s, user.ID, "História")

	a := &models.Flashcard{Front: "a", Back: "a", CourseID: &course.ID, Tags: []string{"Brasil"}}
	b := &models.Flashcard{Front: "b", Back: "b", Tags: []string{"europa"}}
	require.NoError(t, s.CreateFlashcard(ctx, user.ID, a))
	require.NoError(t, s.CreateFlashcard(ctx, user.ID, b))

	byCourse, err := s.ListFlashcards(ctx, user.ID, FlashcardFilter{CourseID: course.ID})
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, a.ID, byCourse[0].ID)

	byTag, err := s.ListFlashcards(ctx, user.ID, FlashcardFilter{Tag: "EUROPA"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, b.ID, byTag[0].ID)
}

func TestReviewFlashcardCreatesAndUpdatesSchedule(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	card := mustCard(t, s, user.ID, "fotossíntese")

	first, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityPerfect, now)
	require.NoError(t, err)
	assert.True(t, first.DueAt.After(now))
	assert.Equal(t, 1, first.Repetitions)

	second, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityGood, first.DueAt)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Repetitions)
	assert.True(t, second.DueAt.After(first.DueAt))

	var schedules int64
	require.NoError(t, s.db.Model(&models.ReviewSchedule{}).Where("flashcard_id = ?", card.ID).Count(&schedules).Error)
	assert.EqualValues(t, 1, schedules)

	history, err := s.ReviewHistory(ctx, user.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, srs.QualityGood, history[0].Quality)
	require.NotNil(t, history[0].PrevDueAt)
	assert.Nil(t, history[1].PrevDueAt)
}

func TestSaveScheduleFirstRatingsRaceLastWins(t *testing.T) {
	s, user := newTestStore(t)
	card := mustCard(t, s, user.ID, "mitose")
	scheduler := srs.DefaultScheduler()

	// Both writers saw no schedule for the card.
	for _, q := range []srs.Quality{srs.QualityHard, srs.QualityPerfect} {
		next, err := scheduler.Next(nil, q, now)
		require.NoError(t, err)
		row := &models.ReviewSchedule{FlashcardID: card.ID}
		row.Apply(next)
		require.NoError(t, saveSchedule(s.db, row))
	}

	var rows []models.ReviewSchedule
	require.NoError(t, s.db.Where("flashcard_id = ?", card.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, srs.QualityPerfect, rows[0].LastQuality)

	sched, err := s.ReviewFlashcard(context.Background(), user.ID, card.ID, srs.QualityGood, now)
	require.NoError(t, err)
	assert.Equal(t, rows[0].ID, sched.ID)
	assert.Equal(t, 2, sched.Repetitions)
}

func TestReviewFlashcardForgotIsDueImmediately(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	card := mustCard(t, s, user.ID, "krebs")

	sched, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityForgot, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now, sched.DueAt, time.Second)

	due, err := s.DueFlashcards(ctx, user.ID, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, card.ID, due[0].ID)
}

func TestDueFlashcardsReflectsRatings(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	a := mustCard(t, s, user.ID, "a")
	b := mustCard(t, s, user.ID, "b")

	due, err := s.DueFlashcards(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Len(t, due, 2)

	_, err = s.ReviewFlashcard(ctx, user.ID, a.ID, srs.QualityGood, now)
	require.NoError(t, err)

	due, err = s.DueFlashcards(ctx, user.ID, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, b.ID, due[0].ID)

	due, err = s.DueFlashcards(ctx, user.ID, now.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestReviewFlashcardAwardsXPAndStreak(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	card := mustCard(t, s, user.ID, "xp")

	_, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityPerfect, now)
	require.NoError(t, err)
	_, err = s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityHard, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityForgot, now.AddDate(0, 0, 1))
	require.NoError(t, err)

	loaded, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10+5+1, loaded.XP)
	assert.Equal(t, 2, loaded.StreakDays)
}

func TestReviewFlashcardRejectsInvalidQuality(t *testing.T) {
	s, user := newTestStore(t)
	card := mustCard(t, s, user.ID, "q")

	_, err := s.ReviewFlashcard(context.Background(), user.ID, card.ID, srs.Quality(6), now)
	assert.ErrorIs(t, err, ErrInvalid)

	loaded, err := s.GetFlashcard(context.Background(), user.ID, card.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Review)
}

func TestUpdateFlashcard(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	course := mustCourse(t, s, user.ID, "Física")
	card := mustCard(t, s, user.ID, "velocidade")
	_, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityGood, now)
	require.NoError(t, err)

	back := "distância sobre tempo"
	hard := models.DifficultyHard
	tags := []string{"cinemática"}
	updated, err := s.UpdateFlashcard(ctx, user.ID, card.ID, FlashcardPatch{
		Back: &back, Difficulty: &hard, Tags: &tags, CourseID: &course.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "velocidade", updated.Front)
	assert.Equal(t, back, updated.Back)
	assert.Equal(t, models.DifficultyHard, updated.Difficulty)
	assert.Equal(t, tags, updated.Tags)
	require.NotNil(t, updated.Course)
	require.NotNil(t, updated.Review)

	cleared, err := s.UpdateFlashcard(ctx, user.ID, card.ID, FlashcardPatch{ClearCourse: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.CourseID)

	empty := " "
	_, err = s.UpdateFlashcard(ctx, user.ID, card.ID, FlashcardPatch{Front: &empty})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteFlashcardRemovesSchedule(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	card := mustCard(t, s, user.ID, "apagar")
	_, err := s.ReviewFlashcard(ctx, user.ID, card.ID, srs.QualityGood, now)
	require.NoError(t, err)

	require.NoError(t, s.DeleteFlashcard(ctx, user.ID, card.ID))
	_, err = s.GetFlashcard(ctx, user.ID, card.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var schedules int64
	require.NoError(t, s.db.Model(&models.ReviewSchedule{}).Count(&schedules).Error)
	assert.Zero(t, schedules)
	assert.ErrorIs(t, s.DeleteFlashcard(ctx, user.ID, card.ID), ErrNotFound)
}

func TestInsertGeneratedAllOrNothing(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	course := mustCourse(t, s, user.ID, "Química")

	bad := []models.Flashcard{
		{Front: "ok", Back: "ok"},
		{Front: "sem verso"},
	}
	_, err := s.InsertGenerated(ctx, user.ID, course.ID, bad)
	assert.ErrorIs(t, err, ErrInvalid)

	cards, err := s.ListFlashcards(ctx, user.ID, FlashcardFilter{})
	require.NoError(t, err)
	assert.Empty(t, cards)

	good := []models.Flashcard{
		{Front: "pH neutro", Back: "7"},
		{Front: "Símbolo do sódio", Back: "Na", Tags: []string{"tabela"}},
	}
	inserted, err := s.InsertGenerated(ctx, user.ID, course.ID, good)
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	for _, card := range inserted {
		assert.True(t, card.GeneratedByAI)
		assert.Equal(t, course.ID, *card.CourseID)
		assert.NotEmpty(t, card.ID)
	}

	_, err = s.InsertGenerated(ctx, user.ID, "missing", good)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoursesOrderingAndDelete(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()

	mustCourse(t, s, user.ID, "zoologia")
	calc := mustCourse(t, s, user.ID, "Cálculo")
	fis := mustCourse(t, s, user.ID, "Física")
	mustCourse(t, s, user.ID, "anatomia")

	fav := true
	order := 1
	_, err := s.UpdateCourse(ctx, user.ID, fis.ID, CoursePatch{Favorite: &fav})
	require.NoError(t, err)
	_, err = s.UpdateCourse(ctx, user.ID, calc.ID, CoursePatch{Order: &order})
	require.NoError(t, err)

	courses, err := s.ListCourses(ctx, user.ID)
	require.NoError(t, err)
	var got []string
	for _, c := range courses {
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{"Física", "Cálculo", "anatomia", "zoologia"}, got)

	card := &models.Flashcard{Front: "f", Back: "b", CourseID: &fis.ID}
	require.NoError(t, s.CreateFlashcard(ctx, user.ID, card))
	require.NoError(t, s.DeleteCourse(ctx, user.ID, fis.ID))

	loaded, err := s.GetFlashcard(ctx, user.ID, card.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.CourseID)
	_, err = s.GetCourse(ctx, user.ID, fis.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	blank := ""
	_, err = s.UpdateCourse(ctx, user.ID, calc.ID, CoursePatch{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStats(t *testing.T) {
	s, user := newTestStore(t)
	ctx := context.Background()
	course := mustCourse(t, s, user.ID, "Geografia")

	mustCard(t, s, user.ID, "a")
	hard := &models.Flashcard{Front: "b", Back: "b", Difficulty: models.DifficultyHard}
	require.NoError(t, s.CreateFlashcard(ctx, user.ID, hard))
	_, err := s.InsertGenerated(ctx, user.ID, course.ID, []models.Flashcard{{Front: "c", Back: "c"}})
	require.NoError(t, err)
	_, err = s.ReviewFlashcard(ctx, user.ID, hard.ID, srs.QualityPerfect, now)
	require.NoError(t, err)

	stats, err := s.Stats(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 2, stats.NeverReviewed)
	assert.Equal(t, [3]int{2, 0, 1}, stats.ByDifficulty)
	assert.Equal(t, 1, stats.GeneratedByAI)
	assert.EqualValues(t, 1, stats.ReviewsToday)
	assert.Equal(t, 10, stats.XP)
	assert.Equal(t, 1, stats.StreakDays)
}
