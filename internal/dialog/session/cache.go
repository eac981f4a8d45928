package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"

	"tutorbot/core/logger"
)

// CacheStore keeps sessions in bigcache; the cache LifeWindow is the
// session TTL, so abandoned dialogues expire without a janitor.
type CacheStore struct {
	cache *bigcache.BigCache
}

// NewCacheStore builds a bigcache-backed store with the given idle TTL.
func NewCacheStore(ttl time.Duration) (*CacheStore, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute
	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return &CacheStore{cache: cache}, nil
}

func cacheKey(userID int64) string { return strconv.FormatInt(userID, 10) }

// Get returns the session for the user. Entries past the TTL read as
// absent even before the cleaner evicts them; bigcache tracks entry age
// with one-second resolution.
func (c *CacheStore) Get(userID int64) (Session, bool) {
	data, resp, err := c.cache.GetWithInfo(cacheKey(userID))
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			logger.L.Warn("session.cache_get_failed", "user_id", userID, "error", err.Error())
		}
		return Session{}, false
	}
	if resp.EntryStatus == bigcache.Expired {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.L.Warn("session.cache_decode_failed", "user_id", userID, "error", err.Error())
		_ = c.cache.Delete(cacheKey(userID))
		return Session{}, false
	}
	return s, true
}

// Set stores the session for the user.
func (c *CacheStore) Set(userID int64, s Session) {
	data, err := json.Marshal(s)
	if err != nil {
		logger.L.Warn("session.cache_encode_failed", "user_id", userID, "error", err.Error())
		return
	}
	if err := c.cache.Set(cacheKey(userID), data); err != nil {
		logger.L.Warn("session.cache_set_failed", "user_id", userID, "error", err.Error())
	}
}

// Clear removes the user's session.
func (c *CacheStore) Clear(userID int64) {
	_ = c.cache.Delete(cacheKey(userID))
}

// Close releases the cache.
func (c *CacheStore) Close() error { return c.cache.Close() }
