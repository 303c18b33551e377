// Package testutil 测试用的 SQLite 内存库与种子数据
package testutil

import (
	"testing"
	"time"

	"trailblazer/pkg/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewSQLiteDB 每个测试一个独立的内存库，外键开启
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", "silent")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewPostgresMock 以 PostgreSQL 方言打开 sqlmock 连接，用于断言生成的 SQL 及其顺序
func NewPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// SeedUser 插入用户并返回ID
func SeedUser(t *testing.T, db *gorm.DB, email, displayName string) uint {
	t.Helper()
	now := time.Now().UTC()
	row := map[string]interface{}{
		"email":         email,
		"password_hash": "x",
		"display_name":  displayName,
		"role":          "user",
		"created_at":    now,
		"updated_at":    now,
	}
	require.NoError(t, db.Table("users").Create(row).Error)
	return lastID(t, db, "users")
}

// SeedTrail 插入步道并返回ID，lat/lon 可为 nil
func SeedTrail(t *testing.T, db *gorm.DB, name string, lat, lon *float64) uint {
	t.Helper()
	now := time.Now().UTC()
	row := map[string]interface{}{
		"name":       name,
		"difficulty": "moderate",
		"lat":        lat,
		"lon":        lon,
		"created_at": now,
		"updated_at": now,
	}
	require.NoError(t, db.Table("trails").Create(row).Error)
	return lastID(t, db, "trails")
}

// SeedReview 插入评价
func SeedReview(t *testing.T, db *gorm.DB, trailID, userID uint, rating int) {
	t.Helper()
	row := map[string]interface{}{
		"trail_id":   trailID,
		"user_id":    userID,
		"rating":     rating,
		"created_at": time.Now().UTC(),
	}
	require.NoError(t, db.Table("reviews").Create(row).Error)
}

// Float 取地址
func Float(v float64) *float64 {
	return &v
}

func lastID(t *testing.T, db *gorm.DB, table string) uint {
	t.Helper()
	var id uint
	require.NoError(t, db.Table(table).Select("MAX(id)").Scan(&id).Error)
	return id
}
