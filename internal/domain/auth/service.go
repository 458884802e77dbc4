package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserAPI is the user lookup the service needs; *Store implements it.
type UserAPI interface {
	FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

type Service struct {
	store    UserAPI
	secret   string
	tokenTTL time.Duration
}

func NewService(store UserAPI, secret string, tokenTTL time.Duration) *Service {
	return &Service{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies credentials and returns a signed bearer token. Unknown
// email and wrong password collapse into the same error so responses don't
// leak which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, AuthUser, error) {
	user, err := s.store.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, ErrInvalidCredentials) {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", AuthUser{}, err
	}

	if err := CheckPassword(user.Password, password); err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Role: user.Role}, s.tokenTTL)
	if err != nil {
		return "", AuthUser{}, err
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login", "userId", user.ID, "error", err)
	}

	user.Password = ""
	return token, user, nil
}

// Verify parses a bearer token back into its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	return ParseToken(s.secret, tokenString)
}
