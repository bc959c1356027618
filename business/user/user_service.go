package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rateMenu/domain"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/utils"
)

var (
	ErrEmailTaken         = domain.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type userService struct {
	userRepo  UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(userRepo UserRepository, jwtSecret string, tokenTTL time.Duration) *userService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Signup creates the account and signs the caller in.
func (s *userService) Signup(ctx context.Context, user *domain.User) (string, domain.User, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.User{}, fmt.Errorf("context error: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", domain.User{}, ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		logger.Error("Failed to look up email", err)
		return "", domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return "", domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Name:     user.Name,
		Email:    email,
		Password: string(passwordHash),
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", domain.User{}, ErrEmailTaken
		}
		logger.Error("Failed to create new user", err)
		return "", domain.User{}, err
	}

	token, err := s.issueToken(newUser)
	if err != nil {
		return "", domain.User{}, err
	}

	logger.Info("user signed up", "user_id", newUser.ID)

	newUser.Password = ""
	return token, newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err)
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) issueToken(user domain.User) (string, error) {
	token, err := utils.GenerateJWT(strconv.FormatInt(user.ID, 10), s.jwtSecret, s.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}
	return token, nil
}
