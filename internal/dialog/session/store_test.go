package session

import (
	"testing"
	"time"

	"tutorbot/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore(0)
	defer m.Close()

	if _, ok := m.Get(1); ok {
		t.Fatal("empty store returned a session")
	}

	s := Session{Phase: "add_student_name", Flow: Flow{NewName: "Иван", NewExam: domain.ExamEGE}}
	m.Set(1, s)

	got, ok := m.Get(1)
	if !ok {
		t.Fatal("stored session not found")
	}
	if got.Phase != s.Phase || got.Flow.NewName != "Иван" || got.Flow.NewExam != domain.ExamEGE {
		t.Fatalf("got %+v, want %+v", got, s)
	}

	m.Clear(1)
	if _, ok := m.Get(1); ok {
		t.Fatal("cleared session still present")
	}
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	m := NewMemoryStore(0)
	defer m.Close()

	m.Set(1, Session{Phase: "choosing"})
	m.Set(2, Session{Phase: "student_home"})

	a, _ := m.Get(1)
	b, _ := m.Get(2)
	if a.Phase != "choosing" || b.Phase != "student_home" {
		t.Fatalf("sessions leaked between users: %v %v", a.Phase, b.Phase)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	m := NewMemoryStore(30 * time.Millisecond)
	defer m.Close()

	m.Set(1, Session{Phase: "choosing"})
	if _, ok := m.Get(1); !ok {
		t.Fatal("fresh session expired immediately")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := m.Get(1); ok {
		t.Fatal("idle session survived past TTL")
	}
}

func TestCacheStoreRoundTrip(t *testing.T) {
	c, err := NewCacheStore(time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	s := Session{
		Phase: "edit_confirm",
		Flow: Flow{
			StudentID: 7,
			EditField: domain.FieldClassDate,
			NewValue:  "01.09.2026",
		},
	}
	c.Set(42, s)

	got, ok := c.Get(42)
	if !ok {
		t.Fatal("stored session not found")
	}
	if got.Phase != s.Phase || got.Flow.StudentID != 7 || got.Flow.EditField != domain.FieldClassDate || got.Flow.NewValue != "01.09.2026" {
		t.Fatalf("got %+v, want %+v", got, s)
	}

	c.Clear(42)
	if _, ok := c.Get(42); ok {
		t.Fatal("cleared session still present")
	}
}

func TestCacheStoreTTLExpiry(t *testing.T) {
	// bigcache ages entries with one-second resolution.
	c, err := NewCacheStore(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Set(1, Session{Phase: "choosing"})
	if _, ok := c.Get(1); !ok {
		t.Fatal("fresh session expired immediately")
	}

	time.Sleep(2200 * time.Millisecond)
	if _, ok := c.Get(1); ok {
		t.Fatal("idle session survived past TTL")
	}
}
