package utils

import "testing"

func TestIsGmailAddress(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@gmail.com", true},
		{"User.Name@GMAIL.COM", true},
		{" user@gmail.com ", true},
		{"user@yahoo.com", false},
		{"user@gmail.com.evil.com", false},
		{"@gmail.com", false},
		{"usergmail.com", false},
		{"", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.email, func(t *testing.T) {
			if got := IsGmailAddress(tc.email); got != tc.want {
				t.Fatalf("IsGmailAddress(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestIsValidFileExtension(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png"}

	tests := []struct {
		filename string
		want     bool
	}{
		{"receipt.jpg", true},
		{"receipt.JPEG", true},
		{"receipt.png", true},
		{"receipt.gif", false},
		{"receipt", false},
		{"", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.filename, func(t *testing.T) {
			if got := IsValidFileExtension(tc.filename, allowed); got != tc.want {
				t.Fatalf("IsValidFileExtension(%q) = %v, want %v", tc.filename, got, tc.want)
			}
		})
	}
}

func TestIsValidProofStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if !IsValidProofStatus(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "Approved", "ok"} {
		if IsValidProofStatus(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPassword("secret123", hash); err != nil {
		t.Fatalf("CheckPassword should accept the right password: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatal("CheckPassword should reject a wrong password")
	}
}
