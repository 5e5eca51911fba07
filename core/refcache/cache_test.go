package refcache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hr-eval/core/refcache"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type entry struct {
	ID   string
	Code string
	Name string
}

func newTestCache(ttl time.Duration, fetch refcache.FetchFunc[entry]) *refcache.Cache[entry] {
	return refcache.New("test", ttl, fetch,
		func(e entry) string { return e.ID },
		func(e entry) string { return e.Code },
		zap.NewNop(),
	)
}

func TestLookupRefreshesInvalidCache(t *testing.T) {
	var calls atomic.Int32
	cache := newTestCache(time.Hour, func(ctx context.Context) ([]entry, error) {
		calls.Add(1)
		return []entry{{ID: "R1", Code: "SR", Name: "Senior"}}, nil
	})

	// First lookup triggers the lazy refresh
	e, ok := cache.LookupByCode(context.Background(), "SR")
	assert.True(t, ok)
	assert.Equal(t, "R1", e.ID)
	assert.Equal(t, int32(1), calls.Load())

	// Within the validity window no further fetch happens
	e, ok = cache.LookupByID(context.Background(), "R1")
	assert.True(t, ok)
	assert.Equal(t, "Senior", e.Name)
	assert.Equal(t, int32(1), calls.Load())

	_, ok = cache.LookupByCode(context.Background(), "missing")
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRefreshReplacesWholesale(t *testing.T) {
	sets := [][]entry{
		{{ID: "R1", Code: "JR", Name: "Junior"}, {ID: "R2", Code: "SR", Name: "Senior"}},
		{{ID: "R3", Code: "PR", Name: "Principal"}},
	}
	var call int
	cache := newTestCache(time.Hour, func(ctx context.Context) ([]entry, error) {
		set := sets[call]
		if call < len(sets)-1 {
			call++
		}
		return set, nil
	})

	assert.NoError(t, cache.Refresh(context.Background()))
	_, ok := cache.LookupByID(context.Background(), "R1")
	assert.True(t, ok)

	// Second refresh replaces the whole set: old entries disappear
	assert.NoError(t, cache.Refresh(context.Background()))
	_, ok = cache.LookupByID(context.Background(), "R1")
	assert.False(t, ok)
	_, ok = cache.LookupByCode(context.Background(), "PR")
	assert.True(t, ok)
}

func TestFailOpenOnRefreshError(t *testing.T) {
	var fail atomic.Bool
	cache := newTestCache(time.Nanosecond, func(ctx context.Context) ([]entry, error) {
		if fail.Load() {
			return nil, errors.New("upstream unavailable")
		}
		return []entry{{ID: "D1", Code: "ENG", Name: "Engineering"}}, nil
	})

	assert.NoError(t, cache.Refresh(context.Background()))

	// TTL is a nanosecond, so the next lookup attempts a refresh which now
	// fails; the stale entry must still be served.
	fail.Store(true)
	time.Sleep(time.Millisecond)
	assert.False(t, cache.Valid())

	e, ok := cache.LookupByCode(context.Background(), "ENG")
	assert.True(t, ok)
	assert.Equal(t, "D1", e.ID)

	// Explicit refresh surfaces the error to its caller
	assert.Error(t, cache.Refresh(context.Background()))
}

func TestValidity(t *testing.T) {
	cache := newTestCache(time.Hour, func(ctx context.Context) ([]entry, error) {
		return nil, nil
	})

	// Never refreshed: invalid
	assert.False(t, cache.Valid())

	assert.NoError(t, cache.Refresh(context.Background()))
	assert.True(t, cache.Valid())
}
