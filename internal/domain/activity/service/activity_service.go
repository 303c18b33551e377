package service

import (
	"context"
	"time"

	"trailblazer/internal/domain/activity/model"
	"trailblazer/internal/domain/activity/repository"
	"trailblazer/internal/pkg/apperr"
)

// TrailChecker 判断步道是否存在
type TrailChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// LogInput 记录一次活动，指标均可选且不能为负
type LogInput struct {
	Date           *time.Time
	DistanceKm     *float64
	DurationMin    *int
	ElevationGainM *float64
}

type ActivityService interface {
	LogActivity(ctx context.Context, userID, trailID uint, in LogInput) (*model.Activity, error)
	ListActivities(ctx context.Context, userID uint, f repository.ActivityFilter) ([]model.Activity, error)
	GetProgress(ctx context.Context, userID uint) (*model.Progress, error)
}

type activityService struct {
	repo     repository.ActivityRepository
	progress repository.ProgressRepository
	trails   TrailChecker
	now      func() time.Time
}

func NewActivityService(repo repository.ActivityRepository, progress repository.ProgressRepository, trails TrailChecker) ActivityService {
	return &activityService{repo: repo, progress: progress, trails: trails, now: time.Now}
}

func (s *activityService) LogActivity(ctx context.Context, userID, trailID uint, in LogInput) (*model.Activity, error) {
	if in.DistanceKm != nil && *in.DistanceKm < 0 {
		return nil, apperr.Invalid("distance_km must be >= 0")
	}
	if in.DurationMin != nil && *in.DurationMin < 0 {
		return nil, apperr.Invalid("duration_min must be >= 0")
	}
	if in.ElevationGainM != nil && *in.ElevationGainM < 0 {
		return nil, apperr.Invalid("elevation_gain_m must be >= 0")
	}

	ok, err := s.trails.Exists(ctx, trailID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("trail")
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}

	activity := &model.Activity{
		UserID:         userID,
		TrailID:        trailID,
		Date:           date.UTC(),
		DistanceKm:     in.DistanceKm,
		DurationMin:    in.DurationMin,
		ElevationGainM: in.ElevationGainM,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) ListActivities(ctx context.Context, userID uint, f repository.ActivityFilter) ([]model.Activity, error) {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return nil, apperr.Invalid("date_from must not be after date_to")
	}
	return s.repo.ListByUser(ctx, userID, f)
}

func (s *activityService) GetProgress(ctx context.Context, userID uint) (*model.Progress, error) {
	return s.progress.Summarize(ctx, userID)
}
