package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"linkhub/internal/middleware"
	"linkhub/internal/services"
	"linkhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes  services.VoteService
	posts  services.PostService
	logger *slog.Logger
}

func NewVoteHandler(votes services.VoteService, posts services.PostService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{votes: votes, posts: posts, logger: logger}
}

// Vote records the current user's vote and answers with the post's new score.
// Form fields: postId, vote (-1, 0 or 1).
func (h *VoteHandler) Vote(c *gin.Context) {
	postID, ok := utils.ParseID(c.PostForm("postId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid postId"})
		return
	}
	value, err := strconv.Atoi(c.PostForm("vote"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vote"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetSinglePost(ctx, postID)
	if err != nil {
		jsonServiceError(c, h.logger, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.votes.CreateOrUpdateVote(ctx, user.ID, postID, value); err != nil {
		jsonServiceError(c, h.logger, err)
		return
	}

	score, err := h.votes.GetVotesForPost(ctx, postID)
	if err != nil {
		jsonServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}
