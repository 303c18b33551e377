package service

import (
	"context"

	"trailblazer/internal/domain/favorite/model"
	"trailblazer/internal/domain/favorite/repository"
	trailModel "trailblazer/internal/domain/trail/model"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/database"
	"trailblazer/pkg/metrics"
)

// TrailChecker 判断步道是否存在
type TrailChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, trailID uint) (*model.ToggleResult, error)
	ListFavorites(ctx context.Context, userID uint) ([]trailModel.Trail, error)
}

type favoriteService struct {
	repo    repository.FavoriteRepository
	trails  TrailChecker
	metrics *metrics.MetricsCollector
}

func NewFavoriteService(repo repository.FavoriteRepository, trails TrailChecker, mc *metrics.MetricsCollector) FavoriteService {
	return &favoriteService{repo: repo, trails: trails, metrics: mc}
}

// Toggle 已收藏则取消，否则收藏
func (s *favoriteService) Toggle(ctx context.Context, userID, trailID uint) (*model.ToggleResult, error) {
	ok, err := s.trails.Exists(ctx, trailID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("trail")
	}

	state, err := s.repo.Toggle(ctx, userID, trailID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordToggle("favorite", string(state))
	}

	if state == database.StateRemoved {
		return &model.ToggleResult{State: string(state), Message: "Removed from favorites"}, nil
	}
	return &model.ToggleResult{State: string(state), IsFavorited: true, Message: "Added to favorites"}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uint) ([]trailModel.Trail, error) {
	return s.repo.ListTrails(ctx, userID)
}
