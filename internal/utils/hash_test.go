package utils

import "testing"

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("Abcdefg1!")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if hash == "Abcdefg1!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "Abcdefg1!"); err != nil {
		t.Errorf("expected matching password to verify, got: %v", err)
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password, got nil")
	}
}

func TestHashPassword_DifferentHashesForSameInput(t *testing.T) {
	first, err := HashPassword("Abcdefg1!")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := HashPassword("Abcdefg1!")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if first == second {
		t.Error("bcrypt hashes of the same password must differ (random salt)")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("Abcdefg1!")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := VerifyPassword(hash, "WrongPass1!"); err == nil {
		t.Error("expected error for wrong password, got nil")
	}
}

func TestVerifyPassword_EmptyHash(t *testing.T) {
	if err := VerifyPassword("", "Abcdefg1!"); err == nil {
		t.Error("expected error for empty hash, got nil")
	}
}
