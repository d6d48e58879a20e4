package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("P@ss1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "P@ss1" {
		t.Fatal("password stored in plaintext")
	}
	if err := CheckPassword(hash, "P@ss1"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
