package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"trailblazer/internal/domain/activity/model"

	"github.com/jmoiron/sqlx"
)

const progressQuery = `
SELECT
	COALESCE(SUM(distance_km), 0) AS total_distance_km,
	COUNT(*) AS total_activities,
	COUNT(DISTINCT trail_id) AS trails_completed,
	CAST(AVG(distance_km) AS DOUBLE PRECISION) AS avg_distance_km,
	CAST(AVG(duration_min) AS DOUBLE PRECISION) AS avg_duration_min
FROM activities
WHERE user_id = ?`

const lastActivityQuery = `SELECT date FROM activities WHERE user_id = ? ORDER BY date DESC LIMIT 1`

// ProgressRepository 用 sqlx 执行聚合查询
type ProgressRepository interface {
	Summarize(ctx context.Context, userID uint) (*model.Progress, error)
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

type progressRow struct {
	TotalDistanceKm float64         `db:"total_distance_km"`
	TotalActivities int64           `db:"total_activities"`
	TrailsCompleted int64           `db:"trails_completed"`
	AvgDistanceKm   sql.NullFloat64 `db:"avg_distance_km"`
	AvgDurationMin  sql.NullFloat64 `db:"avg_duration_min"`
}

// Summarize 每次请求实时计算
func (r *progressRepository) Summarize(ctx context.Context, userID uint) (*model.Progress, error) {
	var row progressRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(progressQuery), userID); err != nil {
		return nil, err
	}

	p := &model.Progress{
		TotalDistanceKm: row.TotalDistanceKm,
		TotalActivities: row.TotalActivities,
		TrailsCompleted: row.TrailsCompleted,
	}
	if row.AvgDistanceKm.Valid {
		v := row.AvgDistanceKm.Float64
		p.AvgDistanceKm = &v
	}
	if row.AvgDurationMin.Valid {
		v := row.AvgDurationMin.Float64
		p.AvgDurationMin = &v
	}

	// MAX(date) 会丢失列类型，单独取最近一条
	var last time.Time
	err := r.db.GetContext(ctx, &last, r.db.Rebind(lastActivityQuery), userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		p.LastActivityAt = &last
	}
	return p, nil
}
