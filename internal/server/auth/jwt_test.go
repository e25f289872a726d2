package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("device-123", "alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	id, err := GetIdentityFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetIdentityFromToken error: %v", err)
	}
	if id.DeviceID != "device-123" {
		t.Fatalf("deviceID mismatch: got %q want %q", id.DeviceID, "device-123")
	}
	if id.Username != "alice" {
		t.Fatalf("username mismatch: got %q want %q", id.Username, "alice")
	}
}

func TestGetIdentityFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("d1", "u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetIdentityFromToken(tok, secret)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestGetIdentityFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("d2", "u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetIdentityFromToken(tok, []byte("wrong-secret"))
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestGetIdentityFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetIdentityFromToken("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
