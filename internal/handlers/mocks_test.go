package handlers

import (
	"context"
	"io"
	"log/slog"

	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CheckLogin(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSessionService struct{ mock.Mock }

func (m *MockSessionService) CreateSession(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) GetUserFromSession(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockSessionService) RemoveSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostService struct{ mock.Mock }

func (m *MockPostService) CreatePost(ctx context.Context, in services.CreatePostInput) (*models.RankedPost, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankedPost), args.Error(1)
}

func (m *MockPostService) GetAllPosts(ctx context.Context, opts services.ListOptions) ([]models.RankedPost, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedPost), args.Error(1)
}

func (m *MockPostService) GetSinglePost(ctx context.Context, id uint) (*models.RankedPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankedPost), args.Error(1)
}

func (m *MockPostService) GetAllPostsForUser(ctx context.Context, userID uint, opts services.ListOptions) ([]models.RankedPost, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedPost), args.Error(1)
}

func (m *MockPostService) GetAllPostsForSubreddit(ctx context.Context, subredditID uint, opts services.ListOptions) ([]models.RankedPost, error) {
	args := m.Called(ctx, subredditID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedPost), args.Error(1)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) CreateComment(ctx context.Context, in services.CreateCommentInput) (*models.Comment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) GetCommentsForPost(ctx context.Context, postID uint) ([]*models.CommentNode, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommentNode), args.Error(1)
}

type MockVoteService struct{ mock.Mock }

func (m *MockVoteService) CreateOrUpdateVote(ctx context.Context, userID, postID uint, value int) error {
	return m.Called(ctx, userID, postID, value).Error(0)
}

func (m *MockVoteService) GetVotesForPost(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubredditService struct{ mock.Mock }

func (m *MockSubredditService) CreateSubreddit(ctx context.Context, name, description string) (*models.Subreddit, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subreddit), args.Error(1)
}

func (m *MockSubredditService) GetAllSubreddits(ctx context.Context) ([]models.Subreddit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subreddit), args.Error(1)
}

func (m *MockSubredditService) GetSubreddit(ctx context.Context, id uint) (*models.Subreddit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subreddit), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTemplates stand in for web/templates with just enough output to assert on.
var testTemplates = map[string]string{
	"error.html":          `{{.Code}} {{.Error}}`,
	"story/list.html":     `{{range .Posts}}{{.Title}};{{end}}`,
	"story/detail.html":   `{{.Post.Title}}|{{.CommentCount}}`,
	"story/create.html":   `{{.Error}}`,
	"auth/login.html":     `{{.Error}}{{.Success}}`,
	"auth/register.html":  `{{.Error}}`,
	"subreddit/list.html": `{{range .Subreddits}}{{.Name}};{{end}}{{.Error}}`,
	"user/public.html":    `{{.User.Username}}:{{range .Posts}}{{.Title}};{{end}}`,
}

// setupRouter builds an engine with sessions and test templates. A non-nil user is logged in.
func setupRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	renderer := multitemplate.NewRenderer()
	for name, tmpl := range testTemplates {
		renderer.AddFromString(name, tmpl)
	}
	r.HTMLRender = renderer

	r.Use(sessions.Sessions("SESSION", cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})
	return r
}
