package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("correct horse battery", hash) {
		t.Fatal("expected matching password to verify")
	}
	if Verify("wrong password", hash) {
		t.Fatal("expected non-matching password to fail")
	}
}

func TestVerifyBadHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("expected malformed hash to fail verification")
	}
}

func TestValidatePassword(t *testing.T) {
	if ValidatePassword("short") {
		t.Fatal("expected 7-char password to be rejected")
	}
	if !ValidatePassword("longenough") {
		t.Fatal("expected 10-char password to be accepted")
	}
}
