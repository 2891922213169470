// Package auth implements account signup and login, grounded on the
// teacher project's internal/services/auth_service.go: bcrypt password
// hashing over a user store, with the same coarse error taxonomy shape
// generalized to this project's errs package.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// DefaultSchedulingZone is applied to new accounts that do not specify
// one at signup.
const DefaultSchedulingZone = "UTC"

// Service handles authentication business logic.
type Service struct {
	users store.UserStore
}

// New constructs an authentication Service.
func New(users store.UserStore) *Service {
	return &Service{users: users}
}

// SignupInput is the required information to create a new account.
type SignupInput struct {
	Username       string
	Password       string
	SchedulingZone string
}

// Signup creates a new user with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	const op = "auth.Signup"

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, errs.Validation(op, "username", "username is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, errs.Validation(op, "password", "password must be at least 8 characters")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, errs.Validation(op, "username", "username already taken")
	} else if kind, ok := errs.KindOf(err); !ok || kind != errs.KindNotFound {
		return nil, errs.Wrap(op, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}

	zone := strings.TrimSpace(in.SchedulingZone)
	if zone == "" {
		zone = DefaultSchedulingZone
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return nil, errs.Validation(op, "scheduling_zone", "unknown IANA time zone")
	}

	user := &models.User{
		Username:       username,
		PasswordHash:   string(hashed),
		SchedulingZone: zone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errs.Wrap(op, err)
	}
	return user, nil
}

// LoginInput holds credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// ErrInvalidCredentials is returned by Login for both unknown usernames
// and bad passwords, so callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Login verifies credentials and returns the authenticated user.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if kind, ok := errs.KindOf(err); ok && kind == errs.KindNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
