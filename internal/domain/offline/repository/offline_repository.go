package repository

import (
	"context"

	"trailblazer/internal/domain/offline/model"
	trailModel "trailblazer/internal/domain/trail/model"
	"trailblazer/pkg/database"

	"gorm.io/gorm"
)

type OfflineRepository interface {
	Toggle(ctx context.Context, userID, trailID uint) (database.ToggleState, error)
	ListTrails(ctx context.Context, userID uint) ([]trailModel.Trail, error)
}

type offlineRepository struct {
	db *gorm.DB
}

func NewOfflineRepository(db *gorm.DB) OfflineRepository {
	return &offlineRepository{db: db}
}

func (r *offlineRepository) Toggle(ctx context.Context, userID, trailID uint) (database.ToggleState, error) {
	return database.TogglePair(ctx, r.db, userID, trailID, func() *model.OfflineDownload {
		return &model.OfflineDownload{UserID: userID, TrailID: trailID}
	})
}

func (r *offlineRepository) ListTrails(ctx context.Context, userID uint) ([]trailModel.Trail, error) {
	var trails []trailModel.Trail
	err := r.db.WithContext(ctx).
		Joins("JOIN offline_downloads od ON od.trail_id = trails.id").
		Where("od.user_id = ?", userID).
		Order("trails.name asc").
		Find(&trails).Error
	return trails, err
}
