package repository

import (
	"context"
	"regexp"
	"testing"

	trailModel "trailblazer/internal/domain/trail/model"
	"trailblazer/internal/domain/user/model"
	"trailblazer/pkg/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Email: "Hiker@example.com", PasswordHash: "h", DisplayName: "Hiker", Role: model.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := repo.GetByEmail(ctx, "Hiker@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	t.Run("email lookup is case sensitive", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "hiker@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Email: "Hiker@example.com", PasswordHash: "h", DisplayName: "x", Role: model.RoleUser})
		assert.Error(t, err)
	})
}

func TestUserRepository_DeleteRecomputesRatings(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@example.com", "Alice")
	bob := testutil.SeedUser(t, db, "bob@example.com", "Bob")
	trailA := testutil.SeedTrail(t, db, "Ridge Loop", nil, nil)
	trailB := testutil.SeedTrail(t, db, "Falls Path", nil, nil)

	testutil.SeedReview(t, db, trailA, alice, 5)
	testutil.SeedReview(t, db, trailA, alice, 4)
	testutil.SeedReview(t, db, trailA, bob, 2)
	testutil.SeedReview(t, db, trailB, alice, 1)

	ids, err := repo.Delete(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{trailA, trailB}, ids)

	var a, b trailModel.Trail
	require.NoError(t, db.First(&a, trailA).Error)
	require.NoError(t, db.First(&b, trailB).Error)
	assert.Equal(t, 2.0, a.AvgRating)
	assert.Equal(t, 1, a.RatingsCount)
	assert.Equal(t, 0.0, b.AvgRating)
	assert.Equal(t, 0, b.RatingsCount)

	var remaining int64
	require.NoError(t, db.Table("reviews").Where("user_id = ?", alice).Count(&remaining).Error)
	assert.Zero(t, remaining)

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.Delete(ctx, alice)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestUserRepository_DeleteLocksReviewedTrails(t *testing.T) {
	db, mock := testutil.NewPostgresMock(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT "trail_id" FROM "reviews"`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"trail_id"}).AddRow(8).AddRow(2))
	mock.ExpectQuery(`SELECT "id" FROM "trails" WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WithArgs(8, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(8))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, trailID := range []int{8, 2} {
		mock.ExpectQuery(regexp.QuoteMeta("AVG(rating)")).
			WithArgs(trailID).
			WillReturnRows(sqlmock.NewRows([]string{"avg", "cnt"}).AddRow(nil, 0))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "trails" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	ids, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{8, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
