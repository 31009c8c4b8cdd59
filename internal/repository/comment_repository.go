package repository

import (
	"context"
	"fmt"

	"linkhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	FindByPost(ctx context.Context, postID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindByID loads a comment with its author's username.
func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comments []models.Comment
	err := r.withAuthor(ctx).
		Where("c.id = ?", id).
		Limit(1).
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	if len(comments) == 0 {
		return nil, nil
	}
	return &comments[0], nil
}

// FindByPost returns every comment of a post, oldest first.
func (r *commentRepository) FindByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.withAuthor(ctx).
		Where("c.post_id = ?", postID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (r *commentRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments AS c").
		Select("c.id, c.text, c.user_id, c.post_id, c.comment_id, c.created_at, u.username AS username").
		Joins("JOIN users u ON u.id = c.user_id")
}
