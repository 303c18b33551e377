package model

import (
	"time"

	baseModel "trailblazer/pkg/model"
)

// Activity 一次徒步记录，date 未提供时为记录时间
type Activity struct {
	baseModel.BaseModel
	UserID         uint      `json:"user_id"`
	TrailID        uint      `json:"trail_id"`
	Date           time.Time `json:"date"`
	DistanceKm     *float64  `json:"distance_km"`
	DurationMin    *int      `json:"duration_min"`
	ElevationGainM *float64  `json:"elevation_gain_m"`
}

// Progress 用户累计数据，没有可平均的值时平均值为 null
type Progress struct {
	TotalDistanceKm float64    `json:"total_distance_km"`
	TotalActivities int64      `json:"total_activities"`
	TrailsCompleted int64      `json:"trails_completed"`
	AvgDistanceKm   *float64   `json:"avg_distance_km"`
	AvgDurationMin  *float64   `json:"avg_duration_min"`
	LastActivityAt  *time.Time `json:"last_activity_at"`
}
