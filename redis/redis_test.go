package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRedis(t *testing.T) {
	t.Helper()
	srv := miniredis.RunT(t)
	Client = goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { Client = nil })
}

// Bumping the doctor's version must orphan every cached range at once; a
// reader computing the key after the bump can never see the old entry.
func TestInvalidateDoctorOrphansCachedRanges(t *testing.T) {
	withTestRedis(t)

	key := SlotsKey(7, "2025-06-02", "2025-06-06", 30*time.Minute)
	SetJSON(key, map[string]string{"cached": "yes"})

	var cached map[string]string
	require.True(t, GetJSON(key, &cached))

	InvalidateDoctor(7)

	fresh := SlotsKey(7, "2025-06-02", "2025-06-06", 30*time.Minute)
	assert.NotEqual(t, key, fresh)

	var stale map[string]string
	assert.False(t, GetJSON(fresh, &stale))
}

func TestInvalidateDoctorScopedPerDoctor(t *testing.T) {
	withTestRedis(t)

	other := SlotsKey(8, "2025-06-02", "2025-06-02", 30*time.Minute)
	SetJSON(other, []string{"kept"})

	InvalidateDoctor(7)

	var kept []string
	assert.True(t, GetJSON(SlotsKey(8, "2025-06-02", "2025-06-02", 30*time.Minute), &kept))
	assert.Equal(t, []string{"kept"}, kept)
}

func TestCacheDisabledWithoutClient(t *testing.T) {
	Client = nil

	var out map[string]string
	assert.False(t, GetJSON("anything", &out))
	SetJSON("anything", 1)
	InvalidateDoctor(1)
}
