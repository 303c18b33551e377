package database_test

import (
	"context"
	"testing"
	"time"

	"trailblazer/pkg/database"
	"trailblazer/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type favoriteRow struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint
	TrailID   uint
	CreatedAt time.Time
}

func (favoriteRow) TableName() string { return "favorites" }

func TestTogglePair(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "a@example.com", "A")
	trail := testutil.SeedTrail(t, db, "Ridge", nil, nil)

	newRow := func() *favoriteRow { return &favoriteRow{UserID: user, TrailID: trail} }
	count := func() int64 {
		var n int64
		require.NoError(t, db.Model(&favoriteRow{}).Where("user_id = ? AND trail_id = ?", user, trail).Count(&n).Error)
		return n
	}

	t.Run("oscillates between added and removed", func(t *testing.T) {
		want := []database.ToggleState{database.StateAdded, database.StateRemoved, database.StateAdded, database.StateRemoved}
		for i, w := range want {
			got, err := database.TogglePair(ctx, db, user, trail, newRow)
			require.NoError(t, err)
			assert.Equal(t, w, got, "toggle #%d", i+1)
		}
		assert.Zero(t, count())
	})

	t.Run("direct duplicate insert is rejected", func(t *testing.T) {
		require.NoError(t, db.Create(newRow()).Error)
		err := db.Create(newRow()).Error
		require.Error(t, err)
		assert.True(t, database.IsUniqueViolation(err))
		assert.Equal(t, int64(1), count())
	})
}

func TestTogglePair_ConcurrentInsertCountsAsAdded(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "a@example.com", "A")
	trail := testutil.SeedTrail(t, db, "Ridge", nil, nil)

	// 在 TogglePair 的删除之后、插入之前，模拟另一个请求抢先插入同一对
	armed := true
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:concurrent_insert", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "favorites" {
			return
		}
		armed = false
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO favorites (user_id, trail_id, created_at) VALUES (?, ?, ?)", user, trail, time.Now())
		require.NoError(t, err)
	}))

	// 不使用默认事务，抢先插入的行不会随失败的 INSERT 一起回滚
	session := db.Session(&gorm.Session{SkipDefaultTransaction: true})
	newRow := func() *favoriteRow { return &favoriteRow{UserID: user, TrailID: trail} }

	got, err := database.TogglePair(ctx, session, user, trail, newRow)
	require.NoError(t, err)
	assert.Equal(t, database.StateAdded, got)
	assert.False(t, armed)

	var n int64
	require.NoError(t, db.Model(&favoriteRow{}).Where("user_id = ? AND trail_id = ?", user, trail).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	got, err = database.TogglePair(ctx, session, user, trail, newRow)
	require.NoError(t, err)
	assert.Equal(t, database.StateRemoved, got)
}

func TestIntegrityErrors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	user := testutil.SeedUser(t, db, "a@example.com", "A")

	err := db.Exec("INSERT INTO reviews (trail_id, user_id, rating) VALUES (999, ?, 3)", user).Error
	assert.True(t, database.IsForeignKeyViolation(err))
	assert.True(t, database.IsIntegrityViolation(err))

	trail := testutil.SeedTrail(t, db, "Ridge", nil, nil)
	err = db.Exec("INSERT INTO reviews (trail_id, user_id, rating) VALUES (?, ?, 9)", trail, user).Error
	assert.True(t, database.IsCheckViolation(err))

	assert.False(t, database.IsIntegrityViolation(nil))
}
