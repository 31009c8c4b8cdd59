package handlers

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/repository"
	"linkhub/internal/services"
	"linkhub/internal/utils"

	"github.com/gin-gonic/gin"
)

const noSuchPage = "No such page exists!"

type StoryHandler struct {
	posts      services.PostService
	comments   services.CommentService
	subreddits services.SubredditService
	logger     *slog.Logger
}

func NewStoryHandler(posts services.PostService, comments services.CommentService, subreddits services.SubredditService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{posts: posts, comments: comments, subreddits: subreddits, logger: logger}
}

// pagination is the template data for prev / next links.
type pagination struct {
	Page     int
	PrevPage int
	NextPage int
	HasPrev  bool
	HasNext  bool
}

func newPagination(page, pageSize, got int) pagination {
	return pagination{
		Page:     page,
		PrevPage: page - 1,
		NextPage: page + 1,
		HasPrev:  page > 0,
		HasNext:  got == pageSize,
	}
}

// listOptions reads ?page and the sort key. ok is false for an unknown sort or a bad page.
func listOptions(c *gin.Context, sort string) (services.ListOptions, bool) {
	if sort == "" {
		sort = services.DefaultSorting
	}
	if _, ok := repository.ParseSort(sort); !ok {
		return services.ListOptions{}, false
	}
	page, ok := utils.ParsePage(c.Query("page"))
	if !ok || page < 0 || page > math.MaxInt/services.DefaultPageSize {
		return services.ListOptions{}, false
	}
	return services.ListOptions{Sorting: strings.ToLower(sort), Page: page, PageSize: services.DefaultPageSize}, true
}

// List serves GET / and GET /:sort
func (h *StoryHandler) List(c *gin.Context) {
	opts, ok := listOptions(c, c.Param("sort"))
	if !ok {
		RenderError(c, http.StatusBadRequest, noSuchPage)
		return
	}

	posts, err := h.posts.GetAllPosts(c.Request.Context(), opts)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	Render(c, http.StatusOK, "story/list.html", gin.H{
		"Title":      "Home",
		"Posts":      posts,
		"Sort":       opts.Sorting,
		"BasePath":   "/" + opts.Sorting,
		"Pagination": newPagination(opts.Page, opts.PageSize, len(posts)),
		"Active":     opts.Sorting,
	})
}

func (h *StoryHandler) ShowCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, gin.H{})
}

func (h *StoryHandler) renderCreate(c *gin.Context, code int, data gin.H) {
	subs, err := h.subreddits.GetAllSubreddits(c.Request.Context())
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	data["Title"] = "Submit"
	data["Subreddits"] = subs
	Render(c, code, "story/create.html", data)
}

func (h *StoryHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	title := c.PostForm("title")
	link := c.PostForm("url")

	in := services.CreatePostInput{UserID: user.ID, Title: title, URL: link}
	if raw := c.PostForm("subredditId"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			h.renderCreate(c, http.StatusBadRequest, gin.H{"Error": "Unknown subreddit", "PostTitle": title, "URL": link})
			return
		}
		in.SubredditID = &id
	}

	post, err := h.posts.CreatePost(c.Request.Context(), in)
	if err != nil {
		code, message := statusFor(err)
		if code == http.StatusBadRequest {
			h.renderCreate(c, code, gin.H{"Error": message, "PostTitle": title, "URL": link})
			return
		}
		renderServiceError(c, h.logger, err)
		return
	}

	h.logger.Info("Post created", "post_id", post.ID, "user_id", user.ID, "request_id", middleware.RequestID(c))
	c.Redirect(http.StatusFound, fmt.Sprintf("/p/%d", post.ID))
}

// Detail shows a post with its whole comment thread.
func (h *StoryHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetSinglePost(ctx, id)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	if post == nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	comments, err := h.comments.GetCommentsForPost(ctx, id)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	Render(c, http.StatusOK, "story/detail.html", gin.H{
		"Title":        post.Title,
		"Post":         post,
		"Comments":     comments,
		"CommentCount": countComments(comments),
	})
}

// CreateComment adds a comment, or a reply when parentId is set.
func (h *StoryHandler) CreateComment(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetSinglePost(ctx, postID)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	if post == nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	in := services.CreateCommentInput{
		UserID: middleware.CurrentUser(c).ID,
		PostID: postID,
		Text:   c.PostForm("text"),
	}
	if raw := c.PostForm("parentId"); raw != "" {
		parentID, ok := utils.ParseID(raw)
		if !ok {
			RenderError(c, http.StatusBadRequest, "invalid parentId")
			return
		}
		in.ParentID = &parentID
	}

	comment, err := h.comments.CreateComment(ctx, in)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/p/%d#c%d", postID, comment.ID))
}

func countComments(nodes []*models.CommentNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countComments(node.Replies)
	}
	return n
}
