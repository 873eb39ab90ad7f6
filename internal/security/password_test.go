package security_test

import (
	"testing"

	"github.com/roomhub/billing/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := security.CheckPassword(hash, "s3cret"); err != nil {
		t.Fatalf("check with correct password failed: %v", err)
	}

	if err := security.CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("check with wrong password should fail")
	}
}
