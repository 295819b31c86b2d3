package access

import (
	"errors"
	"testing"
	"time"
)

func TestToken_RoundTrip(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"))

	tokenString, err := tokens.Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := tokens.Verify(tokenString)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("token misses timestamps")
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Fatalf("expected one hour lifetime, got %v", lifetime)
	}
}

func TestToken_WrongSecret(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"))
	otherTokens := NewTokenService([]byte("other-secret"))

	tokenString, err := tokens.Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := otherTokens.Verify(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestToken_Expired(t *testing.T) {
	tokens := &TokenService{secret: []byte("test-secret"), lifetime: -time.Minute}

	tokenString, err := tokens.Issue(42, "alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.Verify(tokenString); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestToken_Garbage(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"))

	if _, err := tokens.Verify("this is not a token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
