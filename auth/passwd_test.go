package auth

import (
	"strings"
	"testing"
)

func TestHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("hash is not self describing: %v", hash)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("hash does not verify against its own password")
	}
	if VerifyPassword("correct horse battery stapler", hash) {
		t.Fatal("a different password must not verify")
	}
}

func TestHashSaltUniqueness(t *testing.T) {
	first, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must use distinct salts")
	}
	if !VerifyPassword("hunter2", first) || !VerifyPassword("hunter2", second) {
		t.Fatal("both hashes must verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=what$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	}
	for _, h := range malformed {
		if VerifyPassword("anything", h) {
			t.Fatalf("malformed hash %q must not verify", h)
		}
	}
}
