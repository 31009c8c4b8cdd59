package services

import (
	"context"
	"fmt"
	"strings"

	"linkhub/internal/models"
	"linkhub/internal/repository"
)

const maxCommentLength = 10000

// CreateCommentInput carries a new comment. ParentID is nil for a top-level comment.
type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Text     string
}

type CommentService interface {
	CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error)
	GetCommentsForPost(ctx context.Context, postID uint) ([]*models.CommentNode, error)
}

type commentService struct {
	comments repository.CommentRepository
}

func NewCommentService(comments repository.CommentRepository) CommentService {
	return &commentService{comments: comments}
}

func (s *commentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, invalid("text", "is required")
	}
	if len(text) > maxCommentLength {
		return nil, invalid("text", "must be at most %d characters", maxCommentLength)
	}
	if in.UserID == 0 {
		return nil, invalid("userId", "is required")
	}
	if in.PostID == 0 {
		return nil, invalid("postId", "is required")
	}

	if in.ParentID != nil {
		parent, err := s.comments.FindByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != in.PostID {
			return nil, invalid("parentId", "comment %d is not part of this post", *in.ParentID)
		}
	}

	comment := &models.Comment{
		Text:      text,
		UserID:    in.UserID,
		PostID:    in.PostID,
		CommentID: in.ParentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("comment %d vanished after insert", comment.ID)
	}
	return created, nil
}

// GetCommentsForPost returns the post's comment forest.
func (s *commentService) GetCommentsForPost(ctx context.Context, postID uint) ([]*models.CommentNode, error) {
	flat, err := s.comments.FindByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(flat), nil
}
