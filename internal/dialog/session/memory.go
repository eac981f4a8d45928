package session

import (
	"sync"
	"time"
)

type memoryEntry struct {
	s       Session
	touched time.Time
}

// MemoryStore keeps sessions in process memory with idle-TTL eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore builds a store evicting sessions idle longer than ttl.
// ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go m.janitor()
	}
	return m
}

// Get returns the session for the user. Expired entries read as absent.
func (m *MemoryStore) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if m.ttl > 0 && time.Since(e.touched) > m.ttl {
		m.Clear(userID)
		return Session{}, false
	}
	return e.s, true
}

// Set stores the session for the user.
func (m *MemoryStore) Set(userID int64, s Session) {
	m.mu.Lock()
	m.entries[userID] = memoryEntry{s: s, touched: time.Now()}
	m.mu.Unlock()
}

// Clear removes the user's session.
func (m *MemoryStore) Clear(userID int64) {
	m.mu.Lock()
	delete(m.entries, userID)
	m.mu.Unlock()
}

// Close stops the eviction goroutine.
func (m *MemoryStore) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *MemoryStore) janitor() {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-t.C:
			m.mu.Lock()
			for id, e := range m.entries {
				if now.Sub(e.touched) > m.ttl {
					delete(m.entries, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
