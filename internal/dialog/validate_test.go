package dialog

import "testing"

func TestValidateClassDate(t *testing.T) {
	ok := []string{"01.09.2026", "29.02.2024", "5.1.2026", " 10.10.2026 "}
	for _, s := range ok {
		if err := ValidateClassDate(s); err != nil {
			t.Errorf("ValidateClassDate(%q) = %v, want nil", s, err)
		}
	}
	bad := []string{"", "2026-09-01", "32.01.2026", "01.13.2026", "завтра", "01.09"}
	for _, s := range bad {
		if err := ValidateClassDate(s); err == nil {
			t.Errorf("ValidateClassDate(%q) accepted", s)
		}
	}
}

func TestValidateLink(t *testing.T) {
	ok := []string{"http://example.com", "https://zoom.us/j/1", " https://a "}
	for _, s := range ok {
		if err := ValidateLink(s); err != nil {
			t.Errorf("ValidateLink(%q) = %v, want nil", s, err)
		}
	}
	bad := []string{"", "example.com", "ftp://files", "http://", "https://", "www.example.com"}
	for _, s := range bad {
		if err := ValidateLink(s); err == nil {
			t.Errorf("ValidateLink(%q) accepted", s)
		}
	}
}
