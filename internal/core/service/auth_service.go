package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	// Allow reports whether a login attempt may proceed and, when blocked,
	// how long until the next attempt is accepted.
	Allow(ctx context.Context, username string) (bool, time.Duration, error)
	// Failure records a failed attempt.
	Failure(ctx context.Context, username string) error
	// Success resets the failure counter after a successful login.
	Success(ctx context.Context, username string) error
}

// AuthService issues signed credentials for valid accounts. Tokens embed the
// account's role at issuance time; later role changes do not affect tokens
// already in circulation.
type AuthService struct {
	repo      ports.UserRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed token bound to the
// account's current role. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, _, err := s.limiter.Allow(ctx, username)
		if err == nil && !ok {
			return nil, domain.ErrLoginThrottled
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		_ = s.limiter.Success(ctx, username)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		_ = s.limiter.Failure(ctx, username)
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
