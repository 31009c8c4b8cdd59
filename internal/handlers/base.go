package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"linkhub/internal/middleware"
	"linkhub/internal/services"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "an error occurred. please try again later!"

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	if _, ok := obj["Active"]; !ok {
		obj["Active"] = ""
	}

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Code": code})
}

// statusFor maps a service error onto an HTTP status and a message safe to show.
func statusFor(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateSubreddit):
		return http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// renderServiceError renders the error page for err. Unexpected errors are logged with the request id.
func renderServiceError(c *gin.Context, logger *slog.Logger, err error) {
	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("Request failed", "error", err, "path", c.Request.URL.Path, "request_id", middleware.RequestID(c))
	}
	RenderError(c, code, message)
}

// jsonServiceError is renderServiceError for endpoints consumed by scripts.
func jsonServiceError(c *gin.Context, logger *slog.Logger, err error) {
	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("Request failed", "error", err, "path", c.Request.URL.Path, "request_id", middleware.RequestID(c))
	}
	c.JSON(code, gin.H{"error": message})
}
