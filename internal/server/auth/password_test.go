package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("tr0ub4dor&3")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "tr0ub4dor&3" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword(hash, "tr0ub4dor&3") {
		t.Fatal("correct password must verify")
	}
	if CheckPassword(hash, "troubador") {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}
