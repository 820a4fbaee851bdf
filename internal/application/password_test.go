package application

import (
	"errors"
	"strings"
	"testing"
)

// Reduced cost parameters keep the argon2 work factor test friendly.
var testPasswordParams = PasswordParams{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("produces the standard encoding", func(t *testing.T) {
		hash, err := HashPassword("secreto", testPasswordParams)
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
			t.Fatalf("unexpected encoding %q", hash)
		}
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := HashPassword("secreto", testPasswordParams)
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		second, err := HashPassword("secreto", testPasswordParams)
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if first == second {
			t.Fatal("two hashes of the same password must differ")
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secreto", testPasswordParams)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	t.Run("accepts the original password", func(t *testing.T) {
		if err := VerifyPassword(hash, "secreto"); err != nil {
			t.Fatalf("VerifyPassword failed: %v", err)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		if err := VerifyPassword(hash, "otro"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects malformed hashes", func(t *testing.T) {
		for _, malformed := range []string{"", "plaintext", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA"} {
			if err := VerifyPassword(malformed, "secreto"); !errors.Is(err, ErrInvalidPasswordHash) {
				t.Errorf("expected ErrInvalidPasswordHash for %q, got %v", malformed, err)
			}
		}
	})

	t.Run("rejects incompatible versions", func(t *testing.T) {
		tampered := strings.Replace(hash, "v=19", "v=18", 1)
		if err := VerifyPassword(tampered, "secreto"); !errors.Is(err, ErrIncompatiblePasswordVersion) {
			t.Fatalf("expected ErrIncompatiblePasswordVersion, got %v", err)
		}
	})
}
