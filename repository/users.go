package repository

import (
	"context"

	"github.com/CUknot/meetroom/models"
)

// CreateUser inserts a new user. Username or email collisions yield ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&count).Error
	if err != nil {
		return translate("count users", err)
	}
	if count > 0 {
		return ErrDuplicate
	}
	return translate("create user", s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("user by email", err)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("user by id", err)
	}
	return &user, nil
}
