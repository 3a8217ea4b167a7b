package hashing

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !h.Compare(hash, "s3cret-pass") {
		t.Fatal("expected password to match")
	}
	if h.Compare(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestBcryptSaltsEachHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatal("expected different salts for identical passwords")
	}
}

func TestBcryptRejectsOverlongPassword(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("a", 73)

	if _, err := h.Hash(long); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if h.Compare("", "anything") {
		t.Fatal("empty hash must never match")
	}
}

func TestNewBcryptClampsCost(t *testing.T) {
	if got := NewBcrypt(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcrypt(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost for out-of-range value, got %d", got)
	}
}
