package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "pass123",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "", Password: "p", Role: domain.RoleUser}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "bob", Password: "p", Role: "superuser"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for bad role, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "bob", Password: "p1", Role: domain.RoleUser}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "bob", Password: "p2", Role: domain.RoleUser}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_KeepsHashWithoutPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "carol", Password: "original", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ID:       created.ID,
		Username: "carol",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", updated.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("original")); err != nil {
		t.Fatalf("password hash changed without a new password: %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ID:       42,
		Username: "ghost",
		Role:     domain.RoleUser,
	})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), 42); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
