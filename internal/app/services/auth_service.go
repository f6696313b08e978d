package services

import (
	"context"

	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/auth"
	"github.com/loopinhq/backend/internal/pkg/logger"
)

// AuthService handles admin login. There is a single admin identity
// configured at deploy time; sessions are stateless JWTs.
type AuthService struct {
	jwtService    *auth.JWTService
	adminUsername string
	adminPassword string
}

// NewAuthService creates a new auth service instance
func NewAuthService(jwtService *auth.JWTService, adminUsername, adminPassword string) *AuthService {
	return &AuthService{
		jwtService:    jwtService,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Login verifies the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.adminUsername || !auth.VerifyPassword(s.adminPassword, password) {
		logger.Warn().Str("username", username).Msg("Failed admin login attempt")
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(username)
	if err != nil {
		return "", err
	}

	logger.Info().Str("username", username).Msg("Admin logged in")
	return token, nil
}
