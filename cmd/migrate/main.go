package main

import (
	"errors"
	"flag"
	"log"

	"trailblazer/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	direction := flag.String("direction", "up", "up 或 down")
	steps := flag.Int("steps", 0, "down 时回滚的步数，0 表示全部")
	source := flag.String("source", "file://migrations", "迁移文件目录")
	flag.Parse()

	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	if cfg.Driver != "postgres" {
		// SQLite 在打开连接时自动建表
		log.Fatalf("migrations target postgres only, got driver %q", cfg.Driver)
	}

	m, err := migrate.New(*source, cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	switch *direction {
	case "up":
		err = up(m)
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		log.Fatalf("unknown direction %q", *direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	log.Printf("Migration %s successful", *direction)
}

// up 执行迁移；数据库处于 dirty 状态时回退到上一版本后重试
func up(m *migrate.Migrate) error {
	err := m.Up()
	var dirty migrate.ErrDirty
	if !errors.As(err, &dirty) {
		return err
	}

	log.Printf("Database is dirty at version %d, forcing previous version...", dirty.Version)
	prev := dirty.Version - 1
	if prev < 1 {
		prev = -1 // 无版本
	}
	if err := m.Force(prev); err != nil {
		return err
	}
	return m.Up()
}
