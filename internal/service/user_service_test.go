package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
)

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func TestUserService_RegisterThenAuthenticate(t *testing.T) {
	users := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), users, allowAllLimiter{})

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "  A@X.com ",
		DisplayName: "Ana",
		Password:    "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}

	got, err := svc.Authenticate(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %q, got %q", user.ID, got.ID)
	}
}

func TestUserService_AuthenticateGenericFailure(t *testing.T) {
	users := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), users, allowAllLimiter{})

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mismo sentinel para password incorrecto y usuario inexistente.
	if _, err := svc.Authenticate(context.Background(), "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	users := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), users, allowAllLimiter{})

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "secret1"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), users, allowAllLimiter{})

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	users.createErr = repository.ErrDuplicateEmail
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret2"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_AuthenticateRateLimited(t *testing.T) {
	users := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), users, denyAllLimiter{})

	if _, err := svc.Authenticate(context.Background(), "a@x.com", "secret1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
