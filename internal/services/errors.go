package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateUsername  = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("username or password incorrect")
	ErrDuplicateSubreddit = errors.New("a subreddit with this name already exists")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports malformed input. It is raised before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
