package service

import (
	"context"
	"sync"
	"testing"

	"trailblazer/internal/domain/profile/repository"
	userRepository "trailblazer/internal/domain/user/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/testutil"
	"trailblazer/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	s := NewProfileService(repository.NewProfileRepository(db), userRepository.NewUserRepository(db))
	user := testutil.SeedUser(t, db, "a@example.com", "Trail Runner")

	t.Run("first access creates an empty profile", func(t *testing.T) {
		view, err := s.GetProfile(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, user, view.UserID)
		assert.Equal(t, "Trail Runner", view.DisplayName)
		assert.Nil(t, view.Bio)
		assert.Nil(t, view.HomeLat)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, user, ProfileUpdate{Bio: utils.Some("Peak bagger")})
		require.NoError(t, err)

		view, err := s.UpdateProfile(ctx, user, ProfileUpdate{HomeState: utils.Some("CO")})
		require.NoError(t, err)
		require.NotNil(t, view.Bio)
		assert.Equal(t, "Peak bagger", *view.Bio)
		assert.Equal(t, "CO", *view.HomeState)
	})

	t.Run("explicit null clears a field", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, user, ProfileUpdate{HomeLat: utils.Some(39.7), HomeLon: utils.Some(-105.2)})
		require.NoError(t, err)

		view, err := s.UpdateProfile(ctx, user, ProfileUpdate{Bio: utils.Null[string](), HomeLat: utils.Null[float64]()})
		require.NoError(t, err)
		assert.Nil(t, view.Bio)
		assert.Nil(t, view.HomeLat)
		require.NotNil(t, view.HomeLon)
		assert.Equal(t, -105.2, *view.HomeLon)

		reloaded, err := s.GetProfile(ctx, user)
		require.NoError(t, err)
		assert.Nil(t, reloaded.Bio)
		assert.Nil(t, reloaded.HomeLat)
		assert.Equal(t, "CO", *reloaded.HomeState)
	})

	t.Run("out of range coordinates are rejected", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, user, ProfileUpdate{HomeLat: utils.Some(91.0)})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("concurrent first access yields one row", func(t *testing.T) {
		other := testutil.SeedUser(t, db, "b@example.com", "B")
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.GetProfile(ctx, other)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var n int64
		require.NoError(t, db.Table("profiles").Where("user_id = ?", other).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.GetProfile(ctx, 999)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
