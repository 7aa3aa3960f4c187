package crypto

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return h
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	for _, password := range []string{"", "secret1", "pässwörd-ünïcode", strings.Repeat("x", 72)} {
		hash, err := h.Hash(password)
		if err != nil {
			t.Fatalf("hash %q: %v", password, err)
		}
		if hash == password {
			t.Fatalf("hash must not equal plaintext")
		}
		if !h.Verify(password, hash) {
			t.Errorf("expected %q to verify against its own hash", password)
		}
	}
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	for _, candidate := range []string{"secret2", "Secret1", "secret", "secret1 ", ""} {
		if h.Verify(candidate, hash) {
			t.Errorf("expected %q not to verify", candidate)
		}
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
	if !h.Verify("secret1", first) || !h.Verify("secret1", second) {
		t.Error("expected both hashes to verify")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, hashed := range []string{"", "not-a-hash", "$2a$04$short", "hashed_secret1"} {
		if h.Verify("secret1", hashed) {
			t.Errorf("expected malformed hash %q to be rejected", hashed)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	if _, err := NewBcryptHasher(bcrypt.MinCost - 1); err == nil {
		t.Error("expected error for cost below minimum")
	}
	if _, err := NewBcryptHasher(bcrypt.MaxCost + 1); err == nil {
		t.Error("expected error for cost above maximum")
	}
}
