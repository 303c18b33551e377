package repository

import (
	"context"

	"trailblazer/internal/domain/favorite/model"
	trailModel "trailblazer/internal/domain/trail/model"
	"trailblazer/pkg/database"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, trailID uint) (database.ToggleState, error)
	ListTrails(ctx context.Context, userID uint) ([]trailModel.Trail, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Toggle(ctx context.Context, userID, trailID uint) (database.ToggleState, error) {
	return database.TogglePair(ctx, r.db, userID, trailID, func() *model.Favorite {
		return &model.Favorite{UserID: userID, TrailID: trailID}
	})
}

// ListTrails 收藏的步道，按名称排序
func (r *favoriteRepository) ListTrails(ctx context.Context, userID uint) ([]trailModel.Trail, error) {
	var trails []trailModel.Trail
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.trail_id = trails.id").
		Where("favorites.user_id = ?", userID).
		Order("trails.name asc").
		Find(&trails).Error
	return trails, err
}
