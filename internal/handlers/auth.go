package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"linkhub/internal/middleware"
	"linkhub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    services.UserService
	sessions services.SessionService
	logger   *slog.Logger
}

func NewAuthHandler(users services.UserService, sessions services.SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, logger: logger}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Sign up"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.users.CreateUser(c.Request.Context(), username, password)
	if err != nil {
		code, message := statusFor(err)
		if code == http.StatusInternalServerError {
			renderServiceError(c, h.logger, err)
			return
		}
		if errors.Is(err, services.ErrDuplicateUsername) {
			message = "Username already exists! Please try another one!"
		}
		Render(c, code, "auth/register.html", gin.H{"Title": "Sign up", "Error": message, "Username": username})
		return
	}

	h.logger.Info("User registered", "username", username, "request_id", middleware.RequestID(c))
	c.Redirect(http.StatusFound, "/login?created=1")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	data := gin.H{"Title": "Log in"}
	if c.Query("created") != "" {
		data["Success"] = "Account created, you can log in now."
	}
	Render(c, http.StatusOK, "auth/login.html", data)
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	ctx := c.Request.Context()

	user, err := h.users.CheckLogin(ctx, username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Title": "Log in", "Error": err.Error(), "Username": username})
			return
		}
		renderServiceError(c, h.logger, err)
		return
	}

	token, err := h.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionTokenKey, token)
	if err := session.Save(); err != nil {
		renderServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout deletes the server side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if token, ok := session.Get(middleware.SessionTokenKey).(string); ok {
		if err := h.sessions.RemoveSession(c.Request.Context(), token); err != nil {
			renderServiceError(c, h.logger, err)
			return
		}
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.logger.Warn("Failed to clear session cookie", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
