package router

import (
	"linkhub/internal/handlers"
	"linkhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the routes need.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Story     *handlers.StoryHandler
	Vote      *handlers.VoteHandler
	Subreddit *handlers.SubredditHandler
	User      *handlers.UserHandler
}

// RegisterRoutes wires the route table. LoadUser must already be installed on r.
func RegisterRoutes(r *gin.Engine, h Handlers, loginRateLimit int) {
	// 公共路由 (Public Routes)
	r.GET("/", h.Story.List)               // 首页 - 默认 hotness 排序
	r.GET("/p/:id", h.Story.Detail)        // 帖子详情 + 评论树
	r.GET("/subreddits", h.Subreddit.List) // 所有 subreddit
	r.GET("/r/:id", h.Subreddit.Show)      // subreddit 下的帖子
	r.GET("/u/:id", h.User.Profile)        // 用户主页

	r.GET("/signup", h.Auth.ShowRegister)
	r.POST("/signup", h.Auth.Register)
	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", middleware.LoginRateLimit(loginRateLimit), h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/submit", h.Story.ShowCreate)
		authorized.POST("/submit", h.Story.Create)
		authorized.POST("/p/:id/comment", h.Story.CreateComment)
		authorized.POST("/vote", h.Vote.Vote)
		authorized.POST("/subreddits", h.Subreddit.Create)
	}

	// hotness | new | top, anything else is a 400
	r.GET("/:sort", h.Story.List)
}
