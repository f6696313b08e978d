package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/auth"
)

func newAuthServiceForTest() *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret-key",
		TokenExp:    time.Hour,
		TokenIssuer: "loopin-test",
	})
	return NewAuthService(jwtService, "admin", "s3cret")
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		svc := newAuthServiceForTest()

		token, err := svc.Login(ctx, "admin", "s3cret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Fatal("expected a non-empty token")
		}

		claims, err := svc.jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			t.Fatalf("ValidateAndExtractClaims() error = %v", err)
		}
		if claims.Username != "admin" {
			t.Errorf("claims.Username = %q, want %q", claims.Username, "admin")
		}
		if claims.Role != "ADMIN" {
			t.Errorf("claims.Role = %q, want ADMIN", claims.Role)
		}
	})

	t.Run("accepts a bcrypt-hashed configured password", func(t *testing.T) {
		hash, err := auth.HashPassword("s3cret")
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
		jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret-key"})
		svc := NewAuthService(jwtService, "admin", hash)

		if _, err := svc.Login(ctx, "admin", "s3cret"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})

	t.Run("rejects an unknown username", func(t *testing.T) {
		svc := newAuthServiceForTest()

		_, err := svc.Login(ctx, "root", "s3cret")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := newAuthServiceForTest()

		_, err := svc.Login(ctx, "admin", "wrong")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
