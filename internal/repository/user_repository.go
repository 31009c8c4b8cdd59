package repository

import (
	"context"
	"fmt"

	"linkhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID never loads the password hash.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := first[models.User](r.db.WithContext(ctx).
		Select("id", "username", "created_at", "updated_at").
		Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

// FindByUsername includes the password hash; it is only meant for login checks.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := first[models.User](r.db.WithContext(ctx).Where("username = ?", username))
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}
