package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"linkhub/internal/models"
	"linkhub/internal/repository"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
	DefaultSorting  = string(repository.SortHotness)

	maxTitleLength = 300
	maxURLLength   = 2000
)

// ListOptions selects one page of a listing. Page is 0-based; a zero PageSize means DefaultPageSize.
type ListOptions struct {
	Sorting  string
	Page     int
	PageSize int
}

// CreatePostInput carries a new post. SubredditID is optional.
type CreatePostInput struct {
	UserID      uint
	Title       string
	URL         string
	SubredditID *uint
}

type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*models.RankedPost, error)
	GetAllPosts(ctx context.Context, opts ListOptions) ([]models.RankedPost, error)
	GetSinglePost(ctx context.Context, id uint) (*models.RankedPost, error)
	GetAllPostsForUser(ctx context.Context, userID uint, opts ListOptions) ([]models.RankedPost, error)
	GetAllPostsForSubreddit(ctx context.Context, subredditID uint, opts ListOptions) ([]models.RankedPost, error)
}

type postService struct {
	posts      repository.PostRepository
	subreddits repository.SubredditRepository
}

func NewPostService(posts repository.PostRepository, subreddits repository.SubredditRepository) PostService {
	return &postService{posts: posts, subreddits: subreddits}
}

// CreatePost inserts the post and reads it back, so the caller sees server assigned fields.
func (s *postService) CreatePost(ctx context.Context, in CreatePostInput) (*models.RankedPost, error) {
	title := strings.TrimSpace(in.Title)
	link := strings.TrimSpace(in.URL)

	if in.UserID == 0 {
		return nil, invalid("userId", "is required")
	}
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if len(title) > maxTitleLength {
		return nil, invalid("title", "must be at most %d characters", maxTitleLength)
	}
	if err := validateURL(link); err != nil {
		return nil, err
	}

	if in.SubredditID != nil {
		sub, err := s.subreddits.FindByID(ctx, *in.SubredditID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, invalid("subredditId", "subreddit %d does not exist", *in.SubredditID)
		}
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       title,
		URL:         link,
		SubredditID: in.SubredditID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.posts.FindRankedByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("post %d vanished after insert", post.ID)
	}
	return created, nil
}

func (s *postService) GetAllPosts(ctx context.Context, opts ListOptions) ([]models.RankedPost, error) {
	q, err := buildPostQuery(opts)
	if err != nil {
		return nil, err
	}
	return s.posts.FindRanked(ctx, q)
}

func (s *postService) GetSinglePost(ctx context.Context, id uint) (*models.RankedPost, error) {
	return s.posts.FindRankedByID(ctx, id)
}

func (s *postService) GetAllPostsForUser(ctx context.Context, userID uint, opts ListOptions) ([]models.RankedPost, error) {
	q, err := buildPostQuery(opts)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, invalid("userId", "is required")
	}
	q.UserID = userID
	return s.posts.FindRanked(ctx, q)
}

func (s *postService) GetAllPostsForSubreddit(ctx context.Context, subredditID uint, opts ListOptions) ([]models.RankedPost, error) {
	q, err := buildPostQuery(opts)
	if err != nil {
		return nil, err
	}
	if subredditID == 0 {
		return nil, invalid("subredditId", "is required")
	}
	q.SubredditID = subredditID
	return s.posts.FindRanked(ctx, q)
}

// buildPostQuery validates list options. Unknown sort keys are an error, never a fallback.
func buildPostQuery(opts ListOptions) (repository.PostQuery, error) {
	sorting := opts.Sorting
	if sorting == "" {
		sorting = DefaultSorting
	}
	sort, ok := repository.ParseSort(sorting)
	if !ok {
		return repository.PostQuery{}, invalid("sorting", "unknown sort order %q", opts.Sorting)
	}

	if opts.Page < 0 {
		return repository.PostQuery{}, invalid("page", "must not be negative")
	}
	size := opts.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 0 || size > MaxPageSize {
		return repository.PostQuery{}, invalid("pageSize", "must be between 1 and %d", MaxPageSize)
	}
	if opts.Page > math.MaxInt/size {
		return repository.PostQuery{}, invalid("page", "out of range")
	}

	return repository.PostQuery{
		Sort:   sort,
		Limit:  size,
		Offset: opts.Page * size,
	}, nil
}

func validateURL(link string) error {
	if link == "" {
		return invalid("url", "is required")
	}
	if len(link) > maxURLLength {
		return invalid("url", "must be at most %d characters", maxURLLength)
	}
	u, err := url.ParseRequestURI(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid("url", "must be an absolute http(s) link")
	}
	return nil
}
