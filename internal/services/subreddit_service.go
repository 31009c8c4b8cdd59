package services

import (
	"context"
	"fmt"
	"strings"

	"linkhub/internal/models"
	"linkhub/internal/repository"
)

const maxSubredditNameLength = 50

type SubredditService interface {
	CreateSubreddit(ctx context.Context, name, description string) (*models.Subreddit, error)
	GetAllSubreddits(ctx context.Context) ([]models.Subreddit, error)
	GetSubreddit(ctx context.Context, id uint) (*models.Subreddit, error)
}

type subredditService struct {
	subreddits repository.SubredditRepository
}

func NewSubredditService(subreddits repository.SubredditRepository) SubredditService {
	return &subredditService{subreddits: subreddits}
}

func (s *subredditService) CreateSubreddit(ctx context.Context, name, description string) (*models.Subreddit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > maxSubredditNameLength {
		return nil, invalid("name", "must be at most %d characters", maxSubredditNameLength)
	}

	sub := &models.Subreddit{Name: name, Description: strings.TrimSpace(description)}
	if err := s.subreddits.Create(ctx, sub); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateSubreddit
		}
		return nil, err
	}

	created, err := s.subreddits.FindByID(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("subreddit %d vanished after insert", sub.ID)
	}
	return created, nil
}

// GetAllSubreddits lists newest first.
func (s *subredditService) GetAllSubreddits(ctx context.Context) ([]models.Subreddit, error) {
	return s.subreddits.FindAll(ctx)
}

func (s *subredditService) GetSubreddit(ctx context.Context, id uint) (*models.Subreddit, error) {
	return s.subreddits.FindByID(ctx, id)
}
