package service

import (
	"context"

	"trailblazer/internal/domain/offline/model"
	"trailblazer/internal/domain/offline/repository"
	trailModel "trailblazer/internal/domain/trail/model"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/database"
	"trailblazer/pkg/metrics"
)

type TrailChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type OfflineService interface {
	Toggle(ctx context.Context, userID, trailID uint) (*model.StatusResult, error)
	ListOffline(ctx context.Context, userID uint) ([]trailModel.Trail, error)
}

type offlineService struct {
	repo    repository.OfflineRepository
	trails  TrailChecker
	metrics *metrics.MetricsCollector
}

func NewOfflineService(repo repository.OfflineRepository, trails TrailChecker, mc *metrics.MetricsCollector) OfflineService {
	return &offlineService{repo: repo, trails: trails, metrics: mc}
}

func (s *offlineService) Toggle(ctx context.Context, userID, trailID uint) (*model.StatusResult, error) {
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
		s.metrics.RecordToggle("offline", string(state))
	}

	res := &model.StatusResult{State: string(state)}
	switch state {
	case database.StateAdded:
		res.IsOffline = true
		res.Message = "Saved for offline use"
	case database.StateRemoved:
		res.Message = "Removed from offline list"
	}
	return res, nil
}

func (s *offlineService) ListOffline(ctx context.Context, userID uint) ([]trailModel.Trail, error) {
	return s.repo.ListTrails(ctx, userID)
}
