package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/utils"
)

// CoursePatch holds the optional fields of a course update.
type CoursePatch struct {
	Name     *string
	Favorite *bool
	Order    *int
}

// courseOrder lists favorites first, then courses with a custom position,
// then the rest alphabetically.
var courseOrder = []utils.Compare[models.Course]{
	utils.TrueFirst(func(c models.Course) bool { return c.Favorite }),
	utils.PositiveAscending(func(c models.Course) int { return c.Order }),
	utils.Ascending(func(c models.Course) string { return strings.ToLower(c.Name) }),
}

// ListCourses returns the user's courses in display order.
func (s *Store) ListCourses(ctx context.Context, userID uint) ([]models.Course, error) {
	courses := []models.Course{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	utils.SortStable(courses, courseOrder...)
	return courses, nil
}

// GetCourse loads one of the user's courses.
func (s *Store) GetCourse(ctx context.Context, userID uint, id string) (*models.Course, error) {
	return getCourse(s.db.WithContext(ctx), userID, id)
}

func getCourse(db *gorm.DB, userID uint, id string) (*models.Course, error) {
	var course models.Course
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&course).Error; err != nil {
		return nil, notFound(err, "course", id)
	}
	return &course, nil
}

// CreateCourse stores a new course for the user.
func (s *Store) CreateCourse(ctx context.Context, userID uint, course *models.Course) error {
	course.Name = strings.TrimSpace(course.Name)
	if course.Name == "" {
		return fmt.Errorf("%w: course name is required", ErrInvalid)
	}
	id, err := newID()
	if err != nil {
		return err
	}
	course.ID = id
	course.UserID = userID
	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// UpdateCourse applies patch to one of the user's courses.
func (s *Store) UpdateCourse(ctx context.Context, userID uint, id string, patch CoursePatch) (*models.Course, error) {
	db := s.db.WithContext(ctx)
	course, err := getCourse(db, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: course name is required", ErrInvalid)
		}
		course.Name = name
	}
	if patch.Favorite != nil {
		course.Favorite = *patch.Favorite
	}
	if patch.Order != nil {
		course.Order = *patch.Order
	}
	if err := db.Save(course).Error; err != nil {
		return nil, fmt.Errorf("update course %s: %w", id, err)
	}
	return course, nil
}

// DeleteCourse removes a course. Its flashcards stay, detached from it.
func (s *Store) DeleteCourse(ctx context.Context, userID uint, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := getCourse(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Flashcard{}).
			Where("course_id = ? AND user_id = ?", course.ID, userID).
			Update("course_id", nil).Error; err != nil {
			return fmt.Errorf("detach flashcards from course %s: %w", id, err)
		}
		if err := tx.Delete(course).Error; err != nil {
			return fmt.Errorf("delete course %s: %w", id, err)
		}
		return nil
	})
}
