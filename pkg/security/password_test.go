package security_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/platefinder/platefinder-backend/pkg/config"
	"github.com/platefinder/platefinder-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashPassword("very-secure-password", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordLengthBounds(t *testing.T) {
	cfg := config.PasswordConfig{}

	if _, err := security.HashPassword("short", cfg); !errors.Is(err, security.ErrPasswordLength) {
		t.Fatalf("expected length error for short password, got %v", err)
	}
	if _, err := security.HashPassword(strings.Repeat("x", 73), cfg); !errors.Is(err, security.ErrPasswordLength) {
		t.Fatalf("expected length error for long password, got %v", err)
	}
	if _, err := security.HashPassword("sixsix", cfg); err != nil {
		t.Fatalf("six characters should be accepted, got %v", err)
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
