package validators

import "testing"

func TestIsPhoneValid(t *testing.T) {
	valid := []string{
		"+359888123456",
		"0888123456",
		"123456789",
	}
	for _, p := range valid {
		if !IsPhoneValid(p) {
			t.Fatalf("expected %q to be valid", p)
		}
	}

	invalid := []string{
		"",
		"12345678",
		"abc123456789",
		"+359 888 123 456",
		"1234567890123456",
	}
	for _, p := range invalid {
		if IsPhoneValid(p) {
			t.Fatalf("expected %q to be invalid", p)
		}
	}
}
