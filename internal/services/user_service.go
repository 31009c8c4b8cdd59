package services

import (
	"context"
	"fmt"
	"strings"

	"linkhub/internal/models"
	"linkhub/internal/repository"
	"linkhub/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt ignores anything longer

	dummyPassword = "linkhub-dummy-password"
)

type UserService interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	CheckLogin(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	users      repository.UserRepository
	bcryptCost int
	dummyHash  string
}

func NewUserService(users repository.UserRepository, bcryptCost int) UserService {
	// 未知用户也跑一次 bcrypt，保证响应时间一致
	dummy, err := utils.HashPassword(dummyPassword, bcryptCost)
	if err != nil {
		dummy, _ = utils.HashPassword(dummyPassword, bcrypt.DefaultCost)
	}
	return &userService{users: users, bcryptCost: bcryptCost, dummyHash: dummy}
}

// CreateUser relies on the unique index on username, there is no pre-check.
func (s *userService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username", "is required")
	}
	if len(username) > maxUsernameLength {
		return nil, invalid("username", "must be at most %d characters", maxUsernameLength)
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", "must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return nil, invalid("password", "must be at most %d bytes", maxPasswordLength)
	}

	hashed, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Password: hashed}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("user %d vanished after insert", user.ID)
	}
	return created, nil
}

// CheckLogin returns ErrInvalidCredentials for an unknown user and for a wrong password alike.
func (s *userService) CheckLogin(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.CheckPasswordHash(password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
