package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	assert.Equal(t, Fingerprint("hello world"), Fingerprint("hello world"))
	assert.NotEqual(t, Fingerprint("hello world"), Fingerprint("hello worlds"))
}

func TestFingerprintUsesBoundedPrefix(t *testing.T) {
	base := make([]byte, fingerprintPrefix)
	for i := range base {
		base[i] = 'a'
	}
	// Content differing only past the prefix hashes identically.
	assert.Equal(t, Fingerprint(string(base)+"tail one"), Fingerprint(string(base)+"tail two"))
}

func TestKeyIncludesOperation(t *testing.T) {
	assert.NotEqual(t, Key("chunk", "content"), Key("combine", "content"))
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(10)
	key := Key("chunk", "some article text")

	_, ok := c.Get(key, time.Hour)
	require.False(t, ok)

	c.Set(key, "summary")
	v, ok := c.Get(key, time.Hour)
	require.True(t, ok)
	assert.Equal(t, "summary", v)
}

func TestMemoizedOperationRunsOnce(t *testing.T) {
	c := New(10)
	key := Key("chunk", "expensive input")

	calls := 0
	compute := func() string {
		calls++
		return "result"
	}

	lookup := func() string {
		if v, ok := c.Get(key, time.Hour); ok {
			return v.(string)
		}
		v := compute()
		c.Set(key, v)
		return v
	}

	first := lookup()
	second := lookup()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New(10)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", "v")

	current = current.Add(5 * time.Hour)
	_, ok := c.Get("k", 6*time.Hour)
	assert.True(t, ok, "entry younger than ttl should hit")

	current = current.Add(2 * time.Hour)
	_, ok = c.Get("k", 6*time.Hour)
	assert.False(t, ok, "entry older than ttl should miss")

	// Overwriting an expired entry revives it.
	c.Set("k", "v2")
	v, ok := c.Get("k", 6*time.Hour)
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestLRUEviction(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	// Touch k0 so k1 becomes the least recently used.
	_, ok := c.Get("k0", time.Hour)
	require.True(t, ok)

	c.Set("k3", 3)
	assert.Equal(t, 3, c.Len())

	_, ok = c.Get("k1", time.Hour)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("k0", time.Hour)
	assert.True(t, ok)
	_, ok = c.Get("k3", time.Hour)
	assert.True(t, ok)
}
