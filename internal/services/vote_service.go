package services

import (
	"context"

	"linkhub/internal/models"
	"linkhub/internal/repository"
)

type VoteService interface {
	CreateOrUpdateVote(ctx context.Context, userID, postID uint, value int) error
	GetVotesForPost(ctx context.Context, postID uint) (int64, error)
}

type voteService struct {
	votes repository.VoteRepository
}

func NewVoteService(votes repository.VoteRepository) VoteService {
	return &voteService{votes: votes}
}

// CreateOrUpdateVote replaces any earlier vote of the user on the post.
func (s *voteService) CreateOrUpdateVote(ctx context.Context, userID, postID uint, value int) error {
	if !models.ValidVoteValue(value) {
		return invalid("vote", "must be -1, 0 or 1, got %d", value)
	}
	if userID == 0 {
		return invalid("userId", "is required")
	}
	if postID == 0 {
		return invalid("postId", "is required")
	}
	return s.votes.Upsert(ctx, userID, postID, value)
}

// GetVotesForPost returns the net score, 0 for a post without votes.
func (s *voteService) GetVotesForPost(ctx context.Context, postID uint) (int64, error) {
	return s.votes.SumForPost(ctx, postID)
}
