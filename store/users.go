package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrewpaige1/revisa-api/models"
)

// SyncUser returns the user for auth0ID, creating it on first sight and
// refreshing the nickname when the token carries a new one.
func (s *Store) SyncUser(ctx context.Context, auth0ID, nickname string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("auth0_id = ?", auth0ID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Auth0ID: auth0ID, Nickname: nickname}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		slog.Info("created user", "user_id", user.ID, "nickname", nickname)
		return &user, nil
	case err != nil:
		return nil, fmt.Errorf("load user: %w", err)
	}

	if nickname != "" && user.Nickname != nickname {
		if err := db.Model(&user).Update("nickname", nickname).Error; err != nil {
			return nil, fmt.Errorf("update nickname: %w", err)
		}
		slog.Info("updated user nickname", "user_id", user.ID, "nickname", nickname)
	}
	return &user, nil
}

// GetUser loads a user by primary key.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", fmt.Sprint(id))
	}
	return &user, nil
}
