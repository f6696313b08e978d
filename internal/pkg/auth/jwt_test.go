package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:   "unit-test-secret",
		TokenExp:    time.Minute,
		TokenIssuer: "loopin",
	})

	token, err := svc.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want admin", claims.Username)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("Role = %q, want ADMIN", claims.Role)
	}
	if claims.Issuer != "loopin" {
		t.Errorf("Issuer = %q, want loopin", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("expected a token ID")
	}
}

func TestJWTServiceValidation(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "unit-test-secret", TokenExp: time.Minute})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(JWTConfig{SecretKey: "unit-test-secret", TokenExp: -time.Minute})
		token, err := expired.GenerateToken("admin")
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}

		_, err = svc.ValidateAndExtractClaims(token)
		if !errors.Is(err, apperrors.ErrTokenExpired) {
			t.Fatalf("error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "another-secret", TokenExp: time.Minute})
		token, err := other.GenerateToken("admin")
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}

		_, err = svc.ValidateAndExtractClaims(token)
		if !errors.Is(err, apperrors.ErrTokenInvalid) {
			t.Fatalf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("not.a.token")
		if !errors.Is(err, apperrors.ErrInvalidFormat) {
			t.Fatalf("error = %v, want ErrInvalidFormat", err)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing prefix", header: "abc.def.ghi", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidFormat) {
					t.Fatalf("error = %v, want ErrInvalidFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractBearerToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Run("bcrypt hash", func(t *testing.T) {
		hash, err := HashPassword("hunter2")
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
		if !VerifyPassword(hash, "hunter2") {
			t.Error("expected matching password to verify")
		}
		if VerifyPassword(hash, "hunter3") {
			t.Error("expected mismatched password to fail")
		}
	})

	t.Run("plaintext fallback", func(t *testing.T) {
		if !VerifyPassword("devpassword", "devpassword") {
			t.Error("expected plaintext match to verify")
		}
		if VerifyPassword("devpassword", "other") {
			t.Error("expected plaintext mismatch to fail")
		}
	})
}
