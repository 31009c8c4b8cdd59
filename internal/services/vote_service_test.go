package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrUpdateVote_ValidValues(t *testing.T) {
	for _, v := range []int{-1, 0, 1} {
		repo := new(MockVoteRepository)
		svc := NewVoteService(repo)
		repo.On("Upsert", ctx, uint(1), uint(2), v).Return(nil)

		require.NoError(t, svc.CreateOrUpdateVote(ctx, 1, 2, v))
		repo.AssertExpectations(t)
	}
}

func TestCreateOrUpdateVote_RejectsOutOfRange(t *testing.T) {
	repo := new(MockVoteRepository)
	svc := NewVoteService(repo)

	for _, v := range []int{2, -2, 100} {
		err := svc.CreateOrUpdateVote(ctx, 1, 2, v)
		assert.ErrorIs(t, err, ErrValidation)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVotesForPost(t *testing.T) {
	repo := new(MockVoteRepository)
	svc := NewVoteService(repo)
	repo.On("SumForPost", ctx, uint(3)).Return(int64(0), nil)

	total, err := svc.GetVotesForPost(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
