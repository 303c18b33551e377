package database

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewSqlx 复用 gorm 的连接池构建 sqlx 句柄，用于手写聚合查询
func NewSqlx(db *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	name := driver
	if driver == "postgres" {
		name = "pgx"
	}
	return sqlx.NewDb(sqlDB, name), nil
}
