package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// sqliteSchema 开发/测试用的 SQLite 表结构，与 migrations/ 下的 PostgreSQL 版本保持一致
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	display_name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS parks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nps_id TEXT,
	name TEXT NOT NULL,
	state TEXT,
	lat REAL,
	lon REAL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_parks_nps_id ON parks(nps_id);
CREATE INDEX IF NOT EXISTS idx_parks_name ON parks(name);

CREATE TABLE IF NOT EXISTS trails (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	park_id INTEGER REFERENCES parks(id) ON DELETE SET NULL,
	name TEXT NOT NULL,
	difficulty TEXT NOT NULL DEFAULT 'moderate',
	length_km REAL,
	elevation_gain_m REAL,
	accessible BOOLEAN NOT NULL DEFAULT 0,
	has_waterfall BOOLEAN NOT NULL DEFAULT 0,
	has_viewpoint BOOLEAN NOT NULL DEFAULT 0,
	lat REAL,
	lon REAL,
	avg_rating REAL NOT NULL DEFAULT 0,
	ratings_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_trails_name ON trails(name);
CREATE INDEX IF NOT EXISTS idx_trails_park_id ON trails(park_id);

CREATE TABLE IF NOT EXISTS reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	body TEXT,
	created_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_reviews_trail_id ON reviews(trail_id);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	is_pinned BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_notes_trail_user ON notes(trail_id, user_id);

CREATE TABLE IF NOT EXISTS favorites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	created_at DATETIME,
	UNIQUE (user_id, trail_id)
);

CREATE TABLE IF NOT EXISTS offline_downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	created_at DATETIME,
	UNIQUE (user_id, trail_id)
);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	date DATETIME NOT NULL,
	distance_km REAL,
	duration_min INTEGER,
	elevation_gain_m REAL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_activities_user_date ON activities(user_id, date);

CREATE TABLE IF NOT EXISTS profiles (
	user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	avatar_url TEXT,
	bio TEXT,
	home_state TEXT,
	home_lat REAL,
	home_lon REAL,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	trail_id INTEGER REFERENCES trails(id) ON DELETE SET NULL,
	title TEXT,
	body TEXT NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);

CREATE TABLE IF NOT EXISTS photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trail_id INTEGER NOT NULL REFERENCES trails(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	file_path TEXT NOT NULL,
	caption TEXT,
	created_at DATETIME
);
`

// OpenSQLite 打开 SQLite 数据库并建表，外键约束默认开启
func OpenSQLite(dsn, logLevel string) (*gorm.DB, error) {
	memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if memory {
		// 内存库每个连接都是独立的数据库
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := applySQLiteSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// applySQLiteSchema 执行建表语句
func applySQLiteSchema(db *gorm.DB) error {
	for _, stmt := range strings.Split(sqliteSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}
