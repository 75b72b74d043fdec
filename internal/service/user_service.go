package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"
	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"
	"github.com/ibrahim-anas/BooleanBoard/internal/repo"
	"github.com/ibrahim-anas/BooleanBoard/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingFields      = errors.New("all fields are required")
)

// UserService handles registration and login.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register hashes the password and creates the user. A duplicate email
// maps to ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (dom.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return dom.User{}, ErrMissingFields
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, firstName, lastName, email, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Authenticate checks email and password; returns the user if valid.
// An unknown email and a wrong password are indistinguishable to the
// caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !auth.CheckPassword(password, []byte(u.PasswordHash)) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}
