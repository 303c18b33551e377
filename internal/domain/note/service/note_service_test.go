package service

import (
	"context"
	"testing"
	"time"

	"trailblazer/internal/domain/note/model"
	"trailblazer/internal/domain/note/repository"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service NoteService
	alice   uint
	bob     uint
	trail   uint
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewSQLiteDB(t)
	return &fixture{
		db:      db,
		service: NewNoteService(repository.NewNoteRepository(db), trailRepository.NewTrailRepository(db)),
		alice:   testutil.SeedUser(t, db, "alice@example.com", "Alice"),
		bob:     testutil.SeedUser(t, db, "bob@example.com", "Bob"),
		trail:   testutil.SeedTrail(t, db, "Ridge Loop", nil, nil),
	}
}

func TestNoteService_ListOrderAndPrivacy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, err := f.service.CreateNote(ctx, f.alice, f.trail, "old", false)
	require.NoError(t, err)
	pinned, err := f.service.CreateNote(ctx, f.alice, f.trail, "pinned", true)
	require.NoError(t, err)
	newer, err := f.service.CreateNote(ctx, f.alice, f.trail, "newer", false)
	require.NoError(t, err)
	_, err = f.service.CreateNote(ctx, f.bob, f.trail, "bob's", true)
	require.NoError(t, err)

	// 让创建时间严格递增
	base := time.Now().Add(-time.Hour)
	for i, id := range []uint{old.ID, pinned.ID, newer.ID} {
		require.NoError(t, f.db.Model(&model.Note{}).Where("id = ?", id).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	notes, err := f.service.ListNotes(ctx, f.alice, f.trail)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{"pinned", "newer", "old"}, []string{notes[0].Text, notes[1].Text, notes[2].Text})

	t.Run("missing trail", func(t *testing.T) {
		_, err := f.service.ListNotes(ctx, f.alice, 999)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestNoteService_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, err := f.service.CreateNote(ctx, f.alice, f.trail, "mine", false)
	require.NoError(t, err)

	t.Run("other user cannot edit", func(t *testing.T) {
		text := "hijacked"
		_, err := f.service.UpdateNote(ctx, f.bob, note.ID, NoteUpdate{Text: &text})
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		var stored model.Note
		require.NoError(t, f.db.First(&stored, note.ID).Error)
		assert.Equal(t, "mine", stored.Text)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, f.service.DeleteNote(ctx, f.bob, note.ID), apperr.ErrForbidden)
	})

	t.Run("missing note is not found before ownership", func(t *testing.T) {
		assert.ErrorIs(t, f.service.DeleteNote(ctx, f.bob, 12345), apperr.ErrNotFound)
	})

	t.Run("owner partial update keeps text", func(t *testing.T) {
		pinned := true
		updated, err := f.service.UpdateNote(ctx, f.alice, note.ID, NoteUpdate{IsPinned: &pinned})
		require.NoError(t, err)
		assert.True(t, updated.IsPinned)
		assert.Equal(t, "mine", updated.Text)
	})

	t.Run("owner delete", func(t *testing.T) {
		require.NoError(t, f.service.DeleteNote(ctx, f.alice, note.ID))
		assert.ErrorIs(t, f.service.DeleteNote(ctx, f.alice, note.ID), apperr.ErrNotFound)
	})
}
