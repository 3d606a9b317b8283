package auth

import (
	"strings"
	"testing"
)

func TestHashCode(t *testing.T) {
	hash, err := HashCode("open-sesame")
	if err != nil {
		t.Fatalf("HashCode() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash = %q, want argon2id format", hash)
	}

	ok, err := VerifyCode("open-sesame", hash)
	if err != nil {
		t.Fatalf("VerifyCode() error = %v", err)
	}
	if !ok {
		t.Error("VerifyCode() = false for the correct code")
	}
}

func TestVerifyCode_WrongCode(t *testing.T) {
	hash, err := HashCode("open-sesame")
	if err != nil {
		t.Fatalf("HashCode() error = %v", err)
	}

	ok, err := VerifyCode("open-sesamee", hash)
	if err != nil {
		t.Fatalf("VerifyCode() error = %v", err)
	}
	if ok {
		t.Error("VerifyCode() = true for the wrong code")
	}
}

func TestHashCode_UniqueSalts(t *testing.T) {
	first, err := HashCode("same-code")
	if err != nil {
		t.Fatalf("HashCode() error = %v", err)
	}
	second, err := HashCode("same-code")
	if err != nil {
		t.Fatalf("HashCode() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same code are identical; salt is not random")
	}

	for _, hash := range []string{first, second} {
		ok, err := VerifyCode("same-code", hash)
		if err != nil || !ok {
			t.Errorf("VerifyCode() = %v, %v for hash %q", ok, err, hash)
		}
	}
}

func TestVerifyCode_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong scheme", "$bcrypt$whatever"},
		{"truncated", "$argon2id$v=19$m=65536"},
		{"bad base64", "$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyCode("anything", tt.hash)
			if err == nil {
				t.Error("VerifyCode() expected error for malformed hash")
			}
			if ok {
				t.Error("VerifyCode() = true for malformed hash")
			}
		})
	}
}
