package keepalive

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evictRecorder struct {
	batches [][]string
}

func (r *evictRecorder) record(keys []string) {
	r.batches = append(r.batches, keys)
}

func newRecordedCache(capacity int) (*ResizableCache[string, int], *evictRecorder) {
	c := NewResizableCache[string, int](capacity)
	r := &evictRecorder{}
	c.SetOnEvict(r.record)
	return c, r
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	const capacity = 5
	c, _ := newRecordedCache(capacity)
	rng := rand.New(rand.NewSource(1))
	for i := range 1000 {
		c.Set(fmt.Sprintf("k%d", rng.Intn(20)), i)
		require.LessOrEqual(t, c.Len(), capacity)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, r := newRecordedCache(2)
	c.Set("A", 1)
	c.Set("B", 2)
	c.Set("A", 3)
	c.Set("C", 4)

	require.Len(t, r.batches, 1)
	assert.Equal(t, []string{"B"}, r.batches[0])
	assert.Equal(t, []string{"A", "C"}, c.Keys())
	v, ok := c.Get("A")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestCacheRefreshDoesNotDuplicate(t *testing.T) {
	c, r := newRecordedCache(3)
	for range 5 {
		c.Set("A", 1)
	}
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, r.batches)
}

func TestCacheResizeShrinkEvictsInOneBatch(t *testing.T) {
	c, r := newRecordedCache(10)
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		c.Set(k, 0)
	}
	c.Resize(2)

	require.Len(t, r.batches, 1)
	assert.Equal(t, []string{"a", "b", "c"}, r.batches[0])
	assert.Equal(t, []string{"d", "e"}, c.Keys())
	assert.Equal(t, 2, c.Capacity())
}

func TestCacheResizeGrowNeverEvicts(t *testing.T) {
	c, r := newRecordedCache(3)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(k, 0)
	}
	c.Resize(10)
	c.Resize(Unbounded)
	assert.Empty(t, r.batches)
	assert.Equal(t, 3, c.Len())
}

func TestCacheUnboundedNeverEvicts(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		c, r := newRecordedCache(capacity)
		for i := range 500 {
			c.Set(fmt.Sprint(i), i)
		}
		assert.Equal(t, 500, c.Len())
		assert.Empty(t, r.batches)
	}
}

func TestCacheOnlyLatestCallbackIsUsed(t *testing.T) {
	c := NewResizableCache[string, int](1)
	var first, second []string
	c.SetOnEvict(func(keys []string) { first = append(first, keys...) })
	c.SetOnEvict(func(keys []string) { second = append(second, keys...) })
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Empty(t, first)
	assert.Equal(t, []string{"a"}, second)
}

func TestCacheRemoveSkipsCallback(t *testing.T) {
	c, r := newRecordedCache(2)
	c.Set("a", 1)
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Contains("a"))
	assert.Empty(t, r.batches)
}
