package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
)

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) error
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
	log      *logrus.Logger
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenIssuer, log *logrus.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// Signup registers a new account. Every field is required and the email must
// not already be registered.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) error {
	fields := []string{req.Email, req.Password, req.CompanyName, req.UserName, req.Designation, req.CompanyMail}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: all fields are required", ErrValidation)
		}
	}

	_, err := a.userRepo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: user already exists", ErrConflict)
	case !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		CompanyName:  req.CompanyName,
		UserName:     req.UserName,
		Designation:  req.Designation,
		CompanyMail:  req.CompanyMail,
	}
	if err := a.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return err
	}

	a.log.WithField("user_id", user.ID).Info("User signed up")
	return nil
}

// Login returns a signed access token for valid credentials. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return a.tokens.Issue(user.Email)
}
