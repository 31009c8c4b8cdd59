package repository

import (
	"context"
	"fmt"
	"time"

	"linkhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository interface {
	Upsert(ctx context.Context, userID, postID uint, value int) error
	SumForPost(ctx context.Context, postID uint) (int64, error)
}

type voteRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db, now: time.Now}
}

// Upsert records a vote in one statement:
// INSERT ... ON CONFLICT (post_id, user_id) DO UPDATE SET value, updated_at.
func (r *voteRepository) Upsert(ctx context.Context, userID, postID uint, value int) error {
	now := r.now()
	vote := models.Vote{
		PostID:    postID,
		UserID:    userID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&vote).Error
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// SumForPost returns the net score of a post, 0 when nobody voted.
func (r *voteRepository) SumForPost(ctx context.Context, postID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("COALESCE(SUM(value), 0)::bigint").
		Where("post_id = ?", postID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum votes of post %d: %w", postID, err)
	}
	return total, nil
}
