package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"linkhub/internal/middleware"
	"linkhub/internal/services"
	"linkhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type SubredditHandler struct {
	subreddits services.SubredditService
	posts      services.PostService
	logger     *slog.Logger
}

func NewSubredditHandler(subreddits services.SubredditService, posts services.PostService, logger *slog.Logger) *SubredditHandler {
	return &SubredditHandler{subreddits: subreddits, posts: posts, logger: logger}
}

// List 展示所有 subreddit，最新的在前
func (h *SubredditHandler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, gin.H{})
}

func (h *SubredditHandler) renderList(c *gin.Context, code int, data gin.H) {
	subs, err := h.subreddits.GetAllSubreddits(c.Request.Context())
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	data["Title"] = "Subreddits"
	data["Subreddits"] = subs
	data["Active"] = "subreddits"
	Render(c, code, "subreddit/list.html", data)
}

func (h *SubredditHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")

	sub, err := h.subreddits.CreateSubreddit(c.Request.Context(), name, description)
	if err != nil {
		code, message := statusFor(err)
		if code == http.StatusInternalServerError {
			renderServiceError(c, h.logger, err)
			return
		}
		h.renderList(c, code, gin.H{"Error": message, "Name": name, "Description": description})
		return
	}

	h.logger.Info("Subreddit created", "subreddit_id", sub.ID, "user_id", middleware.CurrentUser(c).ID)
	c.Redirect(http.StatusFound, fmt.Sprintf("/r/%d", sub.ID))
}

// Show lists the posts of one subreddit. Accepts ?sort and ?page.
func (h *SubredditHandler) Show(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Subreddit not found")
		return
	}
	opts, ok := listOptions(c, c.Query("sort"))
	if !ok {
		RenderError(c, http.StatusBadRequest, noSuchPage)
		return
	}

	ctx := c.Request.Context()
	sub, err := h.subreddits.GetSubreddit(ctx, id)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	if sub == nil {
		RenderError(c, http.StatusNotFound, "Subreddit not found")
		return
	}

	posts, err := h.posts.GetAllPostsForSubreddit(ctx, id, opts)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	Render(c, http.StatusOK, "story/list.html", gin.H{
		"Title":      sub.Name,
		"Subreddit":  sub,
		"Posts":      posts,
		"Sort":       opts.Sorting,
		"BasePath":   fmt.Sprintf("/r/%d", sub.ID),
		"Pagination": newPagination(opts.Page, opts.PageSize, len(posts)),
	})
}
