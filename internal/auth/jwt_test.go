package auth

import (
	"testing"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
)

func testPayload() JWTPayload {
	return JWTPayload{
		UserID:      "user-1",
		Username:    "admin",
		College:     "college-1",
		CollegeName: "ABC Engineering College",
		Role:        "admin",
	}
}

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)

	token, err := jwtService.GenerateAccessToken(testPayload())
	if err != nil {
		t.Fatalf("An error occurred during access token generation. Error: %v", err)
	}

	claims, err := jwtService.VerifyJwtToken(token)
	if err != nil {
		t.Fatalf("An error occurred during access token verification. Error: %v", err)
	}

	if claims.JWTPayload != testPayload() {
		t.Errorf("expected payload %+v, got %+v", testPayload(), claims.JWTPayload)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != DefaultTokenTTL {
		t.Errorf("expected ttl %v, got %v", DefaultTokenTTL, ttl)
	}
}

func TestJWTRejects(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
	other := NewJwt(config.AuthConfig{JWT_SECRET: "other-secret"}, nil)
	expired := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret", TOKEN_TTL: time.Nanosecond}, nil)

	foreign, _ := other.GenerateAccessToken(testPayload())
	stale, _ := expired.GenerateAccessToken(testPayload())
	time.Sleep(time.Second)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := jwtService.VerifyJwtToken(tt.token); err == nil {
				t.Errorf("expected %s token to be rejected", tt.name)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "password123") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "password124") {
		t.Error("expected wrong password to fail")
	}
}
