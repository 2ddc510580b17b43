package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/linkvault/internal/common"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatalf("expected correct password to verify against its own hash")
	}
}

func TestHashPassword_NeverPlaintext(t *testing.T) {
	const password = "pw1"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == password || strings.Contains(hash, password) {
		t.Fatalf("hash must not contain the plaintext password: %q", hash)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC-formatted argon2id hash, got %q", hash)
	}
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword(hash, "wrong")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$only-four-parts",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		if _, err := VerifyPassword(encoded, "pw"); err == nil {
			t.Fatalf("expected parse error for %q, got nil", encoded)
		}
	}
}
