// Package cache provides a content-addressed, time-bounded memoization store
// shared across pipeline workers. Entries are keyed by an operation tag plus
// a fingerprint of the input content, so two workers computing the same key
// compute the same value and last-write-wins is safe.
package cache

import (
	"container/list"
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

// fingerprintPrefix bounds how much content feeds the hash. Hashing the full
// text of very large articles buys nothing: the first 10k characters identify
// an article for all practical purposes.
const fingerprintPrefix = 10000

// Cache is a bounded in-memory map from cache keys to timestamped values.
// Expired entries behave as misses; a later Set overwrites in place. When the
// entry count exceeds the bound, the least recently used entry is evicted.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	now func() time.Time // test hook
}

type entry struct {
	key   string
	at    time.Time
	value any
}

// New creates a cache bounded to maxEntries. A non-positive bound defaults
// to 1024.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &Cache{
		max:     maxEntries,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Fingerprint hashes a bounded prefix of content into a hex digest.
func Fingerprint(content string) string {
	if len(content) > fingerprintPrefix {
		content = content[:fingerprintPrefix]
	}
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Key builds a cache key from an operation tag and the content fingerprint.
func Key(operation, content string) string {
	return operation + ":" + Fingerprint(content)
}

// Get returns the cached value for key if it is younger than ttl. Expired
// entries are reported as misses but not evicted; the next Set overwrites
// them in place.
func (c *Cache) Get(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if c.now().Sub(e.at) >= ttl {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

// Set stores value under key with the current timestamp, overwriting any
// existing entry and evicting the least recently used entry when full.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		e := elem.Value.(*entry)
		e.at = c.now()
		e.value = value
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.max {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, at: c.now(), value: value})
}

// Len returns the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
