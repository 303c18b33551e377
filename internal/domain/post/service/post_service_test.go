package service

import (
	"context"
	"testing"
	"time"

	"trailblazer/internal/domain/post/model"
	"trailblazer/internal/domain/post/repository"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/testutil"
	"trailblazer/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	s := NewPostService(repository.NewPostRepository(db), trailRepository.NewTrailRepository(db))

	alice := testutil.SeedUser(t, db, "alice@example.com", "Alice")
	bob := testutil.SeedUser(t, db, "bob@example.com", "Bob")
	trail := testutil.SeedTrail(t, db, "Ridge", nil, nil)

	general, err := s.CreatePost(ctx, alice, PostInput{Body: "Anyone hiking this weekend?"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", general.DisplayName)
	assert.Nil(t, general.TrailID)

	onTrail, err := s.CreatePost(ctx, bob, PostInput{TrailID: &trail, Body: "Muddy today"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", general.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	t.Run("unknown trail", func(t *testing.T) {
		missing := uint(999)
		_, err := s.CreatePost(ctx, alice, PostInput{TrailID: &missing, Body: "x"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("list newest first with author names", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, ListQuery{})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, onTrail.ID, posts[0].ID)
		assert.Equal(t, "Bob", posts[0].DisplayName)
	})

	t.Run("filters", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, ListQuery{TrailID: &trail})
		require.NoError(t, err)
		assert.Len(t, posts, 1)

		posts, err = s.ListPosts(ctx, ListQuery{AuthorID: &alice})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, general.ID, posts[0].ID)

		posts, err = s.ListPosts(ctx, ListQuery{Pagination: utils.Pagination{Limit: 1, Offset: 1}})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, general.ID, posts[0].ID)
	})

	t.Run("pagination bounds", func(t *testing.T) {
		_, err := s.ListPosts(ctx, ListQuery{Pagination: utils.Pagination{Limit: 201}})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		_, err = s.ListPosts(ctx, ListQuery{Pagination: utils.Pagination{Offset: -1}})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("only the author edits", func(t *testing.T) {
		body := "edited"
		_, err := s.UpdatePost(ctx, alice, onTrail.ID, PostUpdate{Body: &body})
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		updated, err := s.UpdatePost(ctx, bob, onTrail.ID, PostUpdate{Body: &body})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Body)
		assert.Equal(t, &trail, updated.TrailID)
	})

	t.Run("explicit null detaches trail and clears title", func(t *testing.T) {
		withTitle, err := s.UpdatePost(ctx, bob, onTrail.ID, PostUpdate{Title: utils.Some("Conditions")})
		require.NoError(t, err)
		require.NotNil(t, withTitle.Title)

		cleared, err := s.UpdatePost(ctx, bob, onTrail.ID, PostUpdate{
			TrailID: utils.Null[uint](),
			Title:   utils.Null[string](),
		})
		require.NoError(t, err)
		assert.Nil(t, cleared.TrailID)
		assert.Nil(t, cleared.Title)

		reloaded, err := s.GetPost(ctx, onTrail.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.TrailID)
		assert.Nil(t, reloaded.Title)
		assert.Equal(t, "edited", reloaded.Body)

		_, err = s.UpdatePost(ctx, bob, onTrail.ID, PostUpdate{TrailID: utils.Some(uint(999))})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		reattached, err := s.UpdatePost(ctx, bob, onTrail.ID, PostUpdate{TrailID: utils.Some(trail)})
		require.NoError(t, err)
		assert.Equal(t, &trail, reattached.TrailID)
	})

	t.Run("delete checks existence then ownership", func(t *testing.T) {
		assert.ErrorIs(t, s.DeletePost(ctx, alice, 12345), apperr.ErrNotFound)
		assert.ErrorIs(t, s.DeletePost(ctx, alice, onTrail.ID), apperr.ErrForbidden)
		require.NoError(t, s.DeletePost(ctx, bob, onTrail.ID))

		_, err := s.GetPost(ctx, onTrail.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
