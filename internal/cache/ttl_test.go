package cache

import (
	"testing"
	"time"

	"github.com/smallbiznis/immolens/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiresEntries(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCacheWithClock[int, string](clk)

	c.Set(2025, "snapshot", time.Minute)
	v, ok := c.Get(2025)
	assert.True(t, ok)
	assert.Equal(t, "snapshot", v)

	clk.Advance(59 * time.Second)
	_, ok = c.Get(2025)
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get(2025)
	assert.False(t, ok)
}

func TestTTLCacheDeleteAndPurge(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, 0)
	c.Set("b", 2, time.Hour)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Purge()
	_, ok = c.Get("b")
	assert.False(t, ok)
}
