package service

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" || hash == "correct horse battery staple" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	h2, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if !VerifyPassword("password123", h1) || !VerifyPassword("password123", h2) {
		t.Fatalf("expected both hashes to verify")
	}
}

func TestVerifyPassword_RejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if VerifyPassword("password124", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_MalformedHashIsFalse(t *testing.T) {
	if VerifyPassword("password123", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
	if VerifyPassword("password123", "") {
		t.Fatalf("expected empty hash to fail verification")
	}
}
