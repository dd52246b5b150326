package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate(42, "nurse@polmed.co.za", "nurse", testSecret, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := Validate(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "nurse@polmed.co.za" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != "nurse" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := Generate(1, "a@b.co", "viewer", testSecret, -1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = Validate(token, testSecret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := Generate(1, "a@b.co", "viewer", testSecret, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = Validate(token, "other-secret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := Validate(token, testSecret); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}
