package repository

import (
	"context"
	"fmt"

	"linkhub/internal/models"

	"gorm.io/gorm"
)

type SubredditRepository interface {
	Create(ctx context.Context, sub *models.Subreddit) error
	FindByID(ctx context.Context, id uint) (*models.Subreddit, error)
	FindAll(ctx context.Context) ([]models.Subreddit, error)
}

type subredditRepository struct {
	db *gorm.DB
}

func NewSubredditRepository(db *gorm.DB) SubredditRepository {
	return &subredditRepository{db: db}
}

func (r *subredditRepository) Create(ctx context.Context, sub *models.Subreddit) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create subreddit: %w", err)
	}
	return nil
}

func (r *subredditRepository) FindByID(ctx context.Context, id uint) (*models.Subreddit, error) {
	sub, err := first[models.Subreddit](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find subreddit %d: %w", id, err)
	}
	return sub, nil
}

// FindAll returns every subreddit, newest first.
func (r *subredditRepository) FindAll(ctx context.Context) ([]models.Subreddit, error) {
	subs := make([]models.Subreddit, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subreddits: %w", err)
	}
	return subs, nil
}
