package handlers

import (
	"log/slog"
	"net/http"

	"linkhub/internal/services"
	"linkhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  services.UserService
	posts  services.PostService
	logger *slog.Logger
}

func NewUserHandler(users services.UserService, posts services.PostService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, posts: posts, logger: logger}
}

// Profile shows a user's public page with their posts, newest first.
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}
	sort := c.Query("sort")
	if sort == "" {
		sort = "new"
	}
	opts, ok := listOptions(c, sort)
	if !ok {
		RenderError(c, http.StatusBadRequest, noSuchPage)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetUser(ctx, id)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}
	if user == nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	posts, err := h.posts.GetAllPostsForUser(ctx, id, opts)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	Render(c, http.StatusOK, "user/public.html", gin.H{
		"Title":      user.Username,
		"User":       user,
		"Posts":      posts,
		"Sort":       opts.Sorting,
		"Pagination": newPagination(opts.Page, opts.PageSize, len(posts)),
	})
}
