package storage

import (
	"sort"
	"testing"

	"github.com/maruel/natural"
)

func TestNaturalTitleOrder(t *testing.T) {
	titles := []string{
		"Задание 10",
		"Задание 2",
		"Задание 1",
		"Задание 21",
		"Задание 3",
	}
	sort.Slice(titles, func(i, j int) bool { return natural.Less(titles[i], titles[j]) })

	want := []string{
		"Задание 1",
		"Задание 2",
		"Задание 3",
		"Задание 10",
		"Задание 21",
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, titles[i], want[i], titles)
		}
	}
}
