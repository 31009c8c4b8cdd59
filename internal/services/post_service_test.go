package services

import (
	"errors"
	"math"
	"testing"

	"linkhub/internal/models"
	"linkhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildPostQuery(t *testing.T) {
	tests := []struct {
		name    string
		opts    ListOptions
		want    repository.PostQuery
		wantErr bool
	}{
		{"defaults", ListOptions{}, repository.PostQuery{Sort: repository.SortHotness, Limit: DefaultPageSize}, false},
		{"new page 2", ListOptions{Sorting: "new", Page: 2, PageSize: 10}, repository.PostQuery{Sort: repository.SortNew, Limit: 10, Offset: 20}, false},
		{"top", ListOptions{Sorting: "top"}, repository.PostQuery{Sort: repository.SortTop, Limit: DefaultPageSize}, false},
		{"unknown sort", ListOptions{Sorting: "oldest"}, repository.PostQuery{}, true},
		{"negative page", ListOptions{Page: -1}, repository.PostQuery{}, true},
		{"page size too big", ListOptions{PageSize: MaxPageSize + 1}, repository.PostQuery{}, true},
		{"last page before overflow", ListOptions{Sorting: "new", Page: math.MaxInt / DefaultPageSize}, repository.PostQuery{Sort: repository.SortNew, Limit: DefaultPageSize, Offset: math.MaxInt / DefaultPageSize * DefaultPageSize}, false},
		{"page overflows offset", ListOptions{Sorting: "new", Page: math.MaxInt/DefaultPageSize + 1}, repository.PostQuery{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPostQuery(tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAllPosts_UnknownSortSkipsStorage(t *testing.T) {
	posts := new(MockPostRepository)
	svc := NewPostService(posts, new(MockSubredditRepository))

	_, err := svc.GetAllPosts(ctx, ListOptions{Sorting: "title; DROP TABLE posts"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sorting", verr.Field)
	posts.AssertNotCalled(t, "FindRanked", mock.Anything, mock.Anything)
}

func TestGetAllPostsForUser(t *testing.T) {
	posts := new(MockPostRepository)
	svc := NewPostService(posts, new(MockSubredditRepository))
	want := []models.RankedPost{{ID: 1}}
	posts.On("FindRanked", ctx, repository.PostQuery{Sort: repository.SortNew, Limit: DefaultPageSize, UserID: 9}).Return(want, nil)

	got, err := svc.GetAllPostsForUser(ctx, 9, ListOptions{Sorting: "new"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	posts.AssertExpectations(t)
}

func TestGetAllPostsForSubreddit(t *testing.T) {
	posts := new(MockPostRepository)
	svc := NewPostService(posts, new(MockSubredditRepository))
	posts.On("FindRanked", ctx, repository.PostQuery{Sort: repository.SortHotness, Limit: DefaultPageSize, SubredditID: 4}).
		Return([]models.RankedPost{}, nil)

	got, err := svc.GetAllPostsForSubreddit(ctx, 4, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
	posts.AssertExpectations(t)
}

func TestCreatePost_RefetchesRow(t *testing.T) {
	posts := new(MockPostRepository)
	subs := new(MockSubredditRepository)
	svc := NewPostService(posts, subs)
	subID := uint(2)

	subs.On("FindByID", ctx, subID).Return(&models.Subreddit{ID: subID, Name: "golang"}, nil)
	posts.On("Create", ctx, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Post).ID = 11 }).
		Return(nil)
	posts.On("FindRankedByID", ctx, uint(11)).Return(&models.RankedPost{ID: 11, Title: "Go"}, nil)

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: " Go ", URL: "https://go.dev", SubredditID: &subID})
	require.NoError(t, err)
	assert.Equal(t, uint(11), post.ID)
	posts.AssertExpectations(t)
	subs.AssertExpectations(t)
}

func TestCreatePost_RefetchErrorSurfaces(t *testing.T) {
	posts := new(MockPostRepository)
	svc := NewPostService(posts, new(MockSubredditRepository))
	boom := errors.New("read failed")

	posts.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) { args.Get(1).(*models.Post).ID = 5 }).Return(nil)
	posts.On("FindRankedByID", ctx, uint(5)).Return(nil, boom)

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "t", URL: "http://example.com"})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, post)
}

func TestCreatePost_Validation(t *testing.T) {
	posts := new(MockPostRepository)
	subs := new(MockSubredditRepository)
	svc := NewPostService(posts, subs)
	missing := uint(99)
	subs.On("FindByID", ctx, missing).Return(nil, nil)

	cases := map[string]CreatePostInput{
		"no user":           {Title: "t", URL: "https://a.b"},
		"no title":          {UserID: 1, URL: "https://a.b"},
		"no url":            {UserID: 1, Title: "t"},
		"relative url":      {UserID: 1, Title: "t", URL: "/local"},
		"javascript url":    {UserID: 1, Title: "t", URL: "javascript:alert(1)"},
		"unknown subreddit": {UserID: 1, Title: "t", URL: "https://a.b", SubredditID: &missing},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
