package repository

import (
	"context"
	"time"

	"trailblazer/internal/domain/activity/model"

	"gorm.io/gorm"
)

// ActivityFilter 列表筛选条件，nil 表示不限
type ActivityFilter struct {
	TrailID  *uint
	DateFrom *time.Time
	DateTo   *time.Time
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	ListByUser(ctx context.Context, userID uint, f ActivityFilter) ([]model.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListByUser 按日期倒序，同日期按创建时间倒序
func (r *activityRepository) ListByUser(ctx context.Context, userID uint, f ActivityFilter) ([]model.Activity, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TrailID != nil {
		q = q.Where("trail_id = ?", *f.TrailID)
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", f.DateTo.UTC())
	}

	var activities []model.Activity
	err := q.Order("date desc, created_at desc, id desc").Find(&activities).Error
	return activities, err
}
