package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepository(client, "bliss", zap.NewNop()), mr
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()

	in := models.WorkingSchedule{BarberID: "barber-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true}
	require.NoError(t, repo.Set(ctx, "schedule:barber-1:1", in, time.Minute))
	assert.True(t, mr.Exists("bliss:schedule:barber-1:1"))

	var out models.WorkingSchedule
	require.NoError(t, repo.Get(ctx, "schedule:barber-1:1", &out))
	assert.Equal(t, in.StartTime, out.StartTime)
	assert.True(t, out.IsActive)

	mr.FastForward(2 * time.Minute)
	err := repo.Get(ctx, "schedule:barber-1:1", &out)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()

	for _, key := range []string{"schedule:barber-1:1", "schedule:barber-1:2", "schedule:barber-2:1"} {
		require.NoError(t, repo.Set(ctx, key, map[string]string{"k": key}, time.Hour))
	}

	require.NoError(t, repo.DeleteByPattern(ctx, "schedule:barber-1:*"))
	assert.False(t, mr.Exists("bliss:schedule:barber-1:1"))
	assert.False(t, mr.Exists("bliss:schedule:barber-1:2"))
	assert.True(t, mr.Exists("bliss:schedule:barber-2:1"))
}

func TestCacheRepositoryIncr(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()

	var gen int64
	assert.ErrorIs(t, repo.Get(ctx, "schedule-gen:barber-1", &gen), appErrors.ErrCacheMiss)

	n, err := repo.Incr(ctx, "schedule-gen:barber-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.Incr(ctx, "schedule-gen:barber-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, repo.Get(ctx, "schedule-gen:barber-1", &gen))
	assert.EqualValues(t, 2, gen)
	assert.True(t, mr.Exists("bliss:schedule-gen:barber-1"))
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "", nil)
	ctx := context.Background()

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "any", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "any", "value", time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	n, err := repo.Incr(ctx, "any")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, repo.Ping(ctx))
}
