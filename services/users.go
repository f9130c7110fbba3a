package services

import (
	"context"

	"synthara-api/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// EnsureUser returns the stored account for u, creating it on first sight.
func (s *UserService) EnsureUser(ctx context.Context, u *models.User) (*models.User, error) {
	var stored models.User
	err := s.DB.WithContext(ctx).
		Where(models.User{Email: u.Email}).
		Attrs(models.User{Role: u.Role}).
		FirstOrCreate(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
