package services

import (
	"context"
	"time"

	"linkhub/internal/models"
	"linkhub/internal/repository"
	"linkhub/internal/utils"
)

type SessionService interface {
	CreateSession(ctx context.Context, userID uint) (string, error)
	GetUserFromSession(ctx context.Context, token string) (*models.User, error)
	RemoveSession(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

// NewSessionService issues sessions valid for ttl. A ttl of 0 means sessions never expire.
func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		newToken: utils.GenerateSessionToken,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, userID uint) (string, error) {
	if userID == 0 {
		return "", invalid("userId", "is required")
	}
	token, err := s.newToken()
	if err != nil {
		return "", err
	}

	session := &models.Session{Token: token, UserID: userID}
	if s.ttl > 0 {
		expires := s.now().Add(s.ttl)
		session.ExpiresAt = &expires
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// GetUserFromSession returns nil, nil when the token is unknown or expired.
func (s *sessionService) GetUserFromSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.FindUserByToken(ctx, token, s.now())
}

func (s *sessionService) RemoveSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
