package repository

import (
	"context"
	"fmt"
	"time"

	"linkhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository handles database operations for login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindUserByToken resolves a token to its owner, ignoring sessions that expired before now.
func (r *sessionRepository) FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	user, err := first[models.User](r.db.WithContext(ctx).
		Select("users.id", "users.username", "users.created_at", "users.updated_at").
		Joins("JOIN sessions ON sessions.user_id = users.id").
		Where("sessions.token = ?", token).
		Where("(sessions.expires_at IS NULL OR sessions.expires_at > ?)", now))
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	return user, nil
}

// DeleteByToken is idempotent: deleting an unknown token is not an error.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
