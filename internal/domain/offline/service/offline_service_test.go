package service

import (
	"context"
	"sync"
	"testing"

	"trailblazer/internal/domain/offline/repository"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineService_Toggle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	s := NewOfflineService(repository.NewOfflineRepository(db), trailRepository.NewTrailRepository(db), nil)

	user := testutil.SeedUser(t, db, "a@example.com", "A")
	trail := testutil.SeedTrail(t, db, "Half Dome", nil, nil)

	for i := 0; i < 4; i++ {
		res, err := s.Toggle(ctx, user, trail)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, res.IsOffline)
	}

	trails, err := s.ListOffline(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, trails)
}

func TestOfflineService_ConcurrentTogglesNeverDuplicate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	s := NewOfflineService(repository.NewOfflineRepository(db), trailRepository.NewTrailRepository(db), nil)

	user := testutil.SeedUser(t, db, "a@example.com", "A")
	trail := testutil.SeedTrail(t, db, "Half Dome", nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Toggle(ctx, user, trail)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, db.Table("offline_downloads").Where("user_id = ? AND trail_id = ?", user, trail).Count(&n).Error)
	assert.LessOrEqual(t, n, int64(1))
}
