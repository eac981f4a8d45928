package service

import "testing"

func TestNewStudentPasswordShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		p := NewStudentPassword()
		if len(p) != passwordLength {
			t.Fatalf("password %q has length %d, want %d", p, len(p), passwordLength)
		}
		for _, r := range p {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("password %q contains unexpected rune %q", p, r)
			}
		}
		if seen[p] {
			t.Fatalf("password %q repeated", p)
		}
		seen[p] = true
	}
}
